package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sticky-notes/internal/config"
	"github.com/MKhiriev/go-sticky-notes/internal/logger"
)

// NewNoteStore builds the store selected by cfg.Driver.
func NewNoteStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (NoteStore, error) {
	switch cfg.Driver {
	case config.DriverJSON, "":
		return NewJSONNoteStore(cfg.Files.NotesPath, log), nil
	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return NewSQLiteNoteStore(db, log), nil
	case config.DriverMemory:
		return NewMemoryNoteStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
