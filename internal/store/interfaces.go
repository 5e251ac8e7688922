package store

import (
	"context"

	"github.com/MKhiriev/go-sticky-notes/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteStore persists the whole note collection. Implementations replace the
// stored set on every Save; there are no partial writes.
type NoteStore interface {
	// Load returns the stored notes in creation order. A missing backing file
	// yields an empty slice. Invalid content yields [ErrCorruptStore].
	Load(ctx context.Context) ([]models.Note, error)

	// Save replaces the stored set with notes. Failures wrap [ErrSaveFailed].
	Save(ctx context.Context, notes []models.Note) error

	// Probe checks that the backing location can be written. Failures wrap
	// [ErrStoreUnavailable].
	Probe(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}

// CorruptionRecoverer is implemented by stores that can move an unreadable
// backing file aside so that an empty store can take its place.
type CorruptionRecoverer interface {
	// BackupCorrupt renames the backing file and returns its new location.
	BackupCorrupt(ctx context.Context) (string, error)
}
