package service

import (
	"context"

	"github.com/MKhiriev/go-sticky-notes/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/registry_mock.go -package=mock

// NoteRegistry is the authoritative in-memory collection of notes. Every
// mutation is applied in memory first and then written to the store.
//
// Returned notes are copies; changing them has no effect on the registry.
type NoteRegistry interface {
	// Create adds a note with a fresh id and default geometry and saves.
	Create(ctx context.Context) (models.Note, error)

	// Delete removes the note and saves. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error

	// Update merges patch into the note. Unknown ids yield ErrNoteNotFound.
	Update(ctx context.Context, id string, patch models.NotePatch) (models.Note, error)

	// Get returns the current state of one note.
	Get(id string) (models.Note, error)

	// List returns notes in creation order. A non-empty filter keeps notes
	// whose plain text or title contains it, ignoring case.
	List(filter string) []models.Note

	// Reload replaces the collection with the store's contents, discarding
	// unsaved changes.
	Reload(ctx context.Context) error

	// Flush writes any change still waiting for the autosave timer.
	Flush(ctx context.Context) error

	// Warnings delivers failures of deferred saves.
	Warnings() <-chan error
}
