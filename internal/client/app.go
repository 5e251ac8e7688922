package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sticky-notes/internal/app"
	"github.com/MKhiriev/go-sticky-notes/internal/config"
	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/internal/service"
	"github.com/MKhiriev/go-sticky-notes/internal/store"
	"github.com/MKhiriev/go-sticky-notes/internal/tui"
	"github.com/MKhiriev/go-sticky-notes/internal/workers"
	"github.com/MKhiriev/go-sticky-notes/models"
)

const memoryLocation = "memory (not saved)"

var _ Client = (*App)(nil)

type App struct {
	cfg    *config.StructuredConfig
	ui     UI
	logger *logger.Logger

	// stderr receives problems the user must see after the UI has exited.
	stderr io.Writer
}

func NewApp(cfg *config.StructuredConfig, ui UI, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("client config is nil")
	}
	if ui == nil {
		return nil, errors.New("client ui is nil")
	}
	return &App{cfg: cfg, ui: ui, logger: log, stderr: os.Stderr}, nil
}

// Run opens the store, resolves startup problems with the user, and shows
// the desk until the user quits or the process is signalled. A failed final
// save is reported on stderr but does not fail the run.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	ctx = a.logger.WithContext(ctx)

	session, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := session.store.Close(); cerr != nil {
			a.logger.Err(cerr).Str("func", "App.Run").Msg("failed to close note store")
		}
	}()

	registry := service.NewNoteRegistry(session.store, session.notes,
		service.WithDebounce(a.cfg.SaveDebounce()),
		service.WithTitleLines(a.cfg.UI.PreviewLines),
		service.WithLogger(a.logger),
	)

	view := tui.Session{StorePath: session.location, Notice: session.notice}
	jobs := workers.NewWorkers(a.logger)
	if jsonStore, ok := session.store.(*store.JSONNoteStore); ok && a.cfg.WatchEnabled() {
		watcher := store.NewFileWatcher(jsonStore, a.logger)
		jobs.Add(watcher)
		view.Changes = watcher.Events()
	}
	jobs.Run(ctx)

	a.logger.Info().
		Str("func", "App.Run").
		Str("store", session.location).
		Int("notes", len(session.notes)).
		Msg("starting terminal UI")

	runErr := a.ui.Run(ctx, registry, view)

	// ctx may already be cancelled by a signal; the last save must still run
	if err := registry.Flush(context.WithoutCancel(ctx)); err != nil {
		a.logger.Err(err).Str("func", "App.Run").Msg("failed to flush notes on exit")
		fmt.Fprintf(a.stderr, "stickynotes: last changes were not saved to %s: %v\n", session.location, err)
	}
	if err := jobs.Stop(); err != nil {
		a.logger.Warn().Err(err).Str("func", "App.Run").Msg("background workers stopped with errors")
	}

	return runErr
}

type openedStore struct {
	store    store.NoteStore
	notes    []models.Note
	location string
	notice   string
}

// open returns a usable store and its notes, asking the user how to go on
// when the configured store is unavailable or corrupt.
func (a *App) open(ctx context.Context) (openedStore, error) {
	log := logger.FromContext(ctx)

	noteStore, err := store.NewNoteStore(ctx, a.cfg.Storage, a.logger)
	if errors.Is(err, store.ErrUnknownDriver) {
		return openedStore{}, err
	}
	if err == nil {
		if err = noteStore.Probe(ctx); err != nil {
			noteStore.Close()
		}
	}
	if err != nil {
		log.Err(err).Str("func", "App.open").Msg("note store is unavailable")
		return a.fallbackToMemory(ctx, err)
	}

	opened := openedStore{store: noteStore, location: a.location()}

	notes, err := noteStore.Load(ctx)
	switch {
	case err == nil:
		opened.notes = notes
		return opened, nil

	case errors.Is(err, store.ErrCorruptStore):
		log.Err(err).Str("func", "App.open").Msg("note store is corrupt")
		backup, rerr := a.recoverCorrupt(ctx, noteStore, err)
		if rerr != nil {
			noteStore.Close()
			return openedStore{}, rerr
		}
		opened.notice = app.PrefixCorruptMoved + backup
		return opened, nil

	default:
		log.Err(err).Str("func", "App.open").Msg("failed to load notes")
		noteStore.Close()
		return a.fallbackToMemory(ctx, err)
	}
}

func (a *App) fallbackToMemory(ctx context.Context, cause error) (openedStore, error) {
	question := fmt.Sprintf("%v\n\nContinue with notes kept in memory only?\nNothing you write will be saved.", cause)
	ok, err := a.ui.Confirm(ctx, app.TitleStorageUnavailable, question)
	if err != nil {
		return openedStore{}, fmt.Errorf("startup prompt: %w", err)
	}
	if !ok {
		return openedStore{}, fmt.Errorf("%w: %w", ErrUserDeclined, cause)
	}

	a.logger.Warn().Str("func", "App.fallbackToMemory").Msg("continuing with in-memory store")
	return openedStore{
		store:    store.NewMemoryNoteStore(),
		location: memoryLocation,
		notice:   app.MsgMemoryOnly,
	}, nil
}

func (a *App) recoverCorrupt(ctx context.Context, noteStore store.NoteStore, cause error) (string, error) {
	recoverer, ok := noteStore.(store.CorruptionRecoverer)
	if !ok {
		return "", cause
	}

	question := fmt.Sprintf("%v\n\nMove the unreadable file aside and start with no notes?", cause)
	accepted, err := a.ui.Confirm(ctx, app.TitleCorruptStore, question)
	if err != nil {
		return "", fmt.Errorf("startup prompt: %w", err)
	}
	if !accepted {
		return "", fmt.Errorf("%w: %w", ErrUserDeclined, cause)
	}

	backup, err := recoverer.BackupCorrupt(ctx)
	if err != nil {
		return "", fmt.Errorf("back up corrupt notes: %w", err)
	}
	a.logger.Warn().Str("func", "App.recoverCorrupt").Str("backup", backup).Msg("corrupt notes moved aside")

	return backup, nil
}

func (a *App) location() string {
	switch a.cfg.Storage.Driver {
	case config.DriverSQLite:
		return a.cfg.Storage.DB.DSN
	case config.DriverMemory:
		return memoryLocation
	default:
		return a.cfg.Storage.Files.NotesPath
	}
}
