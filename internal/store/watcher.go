package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-sticky-notes/internal/logger"
)

// DefaultWatchDebounce collapses the burst of events produced by one
// atomic save.
const DefaultWatchDebounce = 100 * time.Millisecond

// ExternalChange reports that the notes file was modified by someone other
// than this process.
type ExternalChange struct {
	Path    string
	Removed bool
}

// digestSource is the part of [JSONNoteStore] the watcher depends on.
type digestSource interface {
	Path() string
	Digest() (uint64, bool)
}

// FileWatcher watches the directory of a JSON notes file and reports changes
// whose content differs from what the store last read or wrote.
type FileWatcher struct {
	source digestSource
	logger *logger.Logger
	delay  time.Duration
	events chan ExternalChange
	ready  chan struct{}

	lastReported uint64
}

// NewFileWatcher returns a watcher for the file of src. Call Run to start it.
func NewFileWatcher(src digestSource, log *logger.Logger) *FileWatcher {
	return &FileWatcher{
		source: src,
		logger: log,
		delay:  DefaultWatchDebounce,
		events: make(chan ExternalChange, 8),
		ready:  make(chan struct{}),
	}
}

// Events delivers external changes. The channel is closed when Run returns.
func (w *FileWatcher) Events() <-chan ExternalChange {
	return w.events
}

// Run blocks until ctx is cancelled or the watcher fails.
func (w *FileWatcher) Run(ctx context.Context) error {
	defer close(w.events)

	path := filepath.Clean(w.source.Path())
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create watched directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	close(w.ready)
	w.logger.Debug().Str("func", "FileWatcher.Run").Str("path", path).Msg("watching notes file")

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event, path) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(w.delay)
			} else {
				debounce.Stop()
				debounce.Reset(w.delay)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			if change, ok := w.check(path); ok {
				w.emit(ctx, change)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// keep watching
			w.logger.Err(err).Str("func", "FileWatcher.Run").Msg("fsnotify error")
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event, path string) bool {
	if strings.HasPrefix(filepath.Base(event.Name), TempFilePrefix) {
		return false
	}
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// check compares the file on disk with the store's digest.
func (w *FileWatcher) check(path string) (ExternalChange, bool) {
	known, hasKnown := w.source.Digest()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && hasKnown {
			return ExternalChange{Path: path, Removed: true}, true
		}
		return ExternalChange{}, false
	}

	sum := xxhash.Sum64(data)
	if hasKnown && sum == known {
		return ExternalChange{}, false
	}
	if sum == w.lastReported {
		return ExternalChange{}, false
	}
	w.lastReported = sum

	return ExternalChange{Path: path}, true
}

func (w *FileWatcher) emit(ctx context.Context, change ExternalChange) {
	w.logger.Info().
		Str("func", "FileWatcher.emit").
		Str("path", change.Path).
		Bool("removed", change.Removed).
		Msg("notes file changed on disk")

	select {
	case w.events <- change:
	case <-ctx.Done():
	default:
		// channel full, drop event
	}
}
