package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-sticky-notes/models"
)

// memoryNoteStore keeps notes in process memory only. It backs the fallback
// mode offered when the configured location cannot be written.
type memoryNoteStore struct {
	mu    sync.Mutex
	notes []models.Note
}

// NewMemoryNoteStore returns an empty in-memory store.
func NewMemoryNoteStore() NoteStore {
	return &memoryNoteStore{}
}

func (m *memoryNoteStore) Load(ctx context.Context) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return cloneNotes(m.notes), nil
}

func (m *memoryNoteStore) Save(ctx context.Context, notes []models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notes = cloneNotes(notes)
	return nil
}

func (m *memoryNoteStore) Probe(ctx context.Context) error { return nil }

func (m *memoryNoteStore) Close() error { return nil }

func cloneNotes(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
