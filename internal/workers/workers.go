package workers

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-sticky-notes/internal/logger"
)

// Workers starts a set of workers in their own goroutines and waits for them
// on Stop.
type Workers struct {
	workers []Worker
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	errs   []error
}

func NewWorkers(log *logger.Logger, workers ...Worker) *Workers {
	return &Workers{
		workers: workers,
		logger:  log,
	}
}

// Add registers a worker. It has no effect on workers already started.
func (w *Workers) Add(worker Worker) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.workers = append(w.workers, worker)
}

// Run starts every registered worker. It returns immediately.
func (w *Workers) Run(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for i, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if err := worker.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Err(err).Str("func", "Workers.Run").Int("worker", i).Msg("worker stopped with error")
				w.mu.Lock()
				w.errs = append(w.errs, err)
				w.mu.Unlock()
			}
		}()
	}
}

// Stop cancels the workers and blocks until all of them returned. The
// joined worker errors are returned. Safe to call when Run was never called.
func (w *Workers) Stop() error {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	return errors.Join(w.errs...)
}
