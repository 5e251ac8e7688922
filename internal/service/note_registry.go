// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/internal/preview"
	"github.com/MKhiriev/go-sticky-notes/internal/store"
	"github.com/MKhiriev/go-sticky-notes/internal/utils"
	"github.com/MKhiriev/go-sticky-notes/internal/validators"
	"github.com/MKhiriev/go-sticky-notes/models"
)

const (
	// DefaultTitleLines is the number of plain-text lines that make a title.
	DefaultTitleLines = 5

	maxIDAttempts = 8
)

// RegistryOption customises a registry built by [NewNoteRegistry].
type RegistryOption func(*noteRegistry)

// WithDebounce delays saves after Update until no update arrived for d.
// Zero keeps every save inline.
func WithDebounce(d time.Duration) RegistryOption {
	return func(r *noteRegistry) { r.debounce = d }
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(g utils.IDGenerator) RegistryOption {
	return func(r *noteRegistry) { r.ids = g }
}

// WithTitleLines sets how many lines of content make up a title.
func WithTitleLines(n int) RegistryOption {
	return func(r *noteRegistry) {
		if n > 0 {
			r.titleLines = n
		}
	}
}

// WithValidator replaces the patch validator.
func WithValidator(v validators.Validator) RegistryOption {
	return func(r *noteRegistry) { r.validator = v }
}

// WithLogger sets the logger used by deferred saves, which run without a
// caller context.
func WithLogger(l *logger.Logger) RegistryOption {
	return func(r *noteRegistry) { r.logger = l }
}

type noteRegistry struct {
	store      store.NoteStore
	ids        utils.IDGenerator
	validator  validators.Validator
	titleLines int
	debounce   time.Duration
	logger     *logger.Logger
	warnings   chan error

	// saveMu serialises snapshot+save so an older snapshot never overwrites
	// a newer one.
	saveMu sync.Mutex

	mu    sync.Mutex
	order []string
	notes map[string]*models.Note
	dirty bool
	timer *time.Timer
}

// NewNoteRegistry hydrates a registry from notes, typically the result of
// [store.NoteStore.Load]. Notes keep their order.
func NewNoteRegistry(noteStore store.NoteStore, notes []models.Note, opts ...RegistryOption) NoteRegistry {
	r := &noteRegistry{
		store:      noteStore,
		ids:        utils.NewUUIDGenerator(),
		validator:  validators.NewNoteValidator(),
		titleLines: DefaultTitleLines,
		logger:     logger.Nop(),
		warnings:   make(chan error, 4),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.hydrate(context.Background(), notes)

	return r
}

func (r *noteRegistry) Create(ctx context.Context) (models.Note, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	id, err := r.newIDLocked()
	if err != nil {
		r.mu.Unlock()
		return models.Note{}, err
	}

	note := models.NewNote(id)
	note.Title = preview.FallbackTitle(id)
	r.order = append(r.order, id)
	r.notes[id] = &note
	r.dirty = true
	r.stopTimerLocked()
	created := note.Clone()
	r.mu.Unlock()

	log.Debug().Str("func", "noteRegistry.Create").Str("note_id", id).Msg("note created")

	return created, r.save(ctx)
}

func (r *noteRegistry) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	if _, ok := r.notes[id]; !ok {
		r.mu.Unlock()
		log.Debug().Str("func", "noteRegistry.Delete").Str("note_id", id).Msg("note already gone")
		return nil
	}

	delete(r.notes, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.dirty = true
	r.stopTimerLocked()
	r.mu.Unlock()

	log.Debug().Str("func", "noteRegistry.Delete").Str("note_id", id).Msg("note deleted")

	return r.save(ctx)
}

func (r *noteRegistry) Update(ctx context.Context, id string, patch models.NotePatch) (models.Note, error) {
	if err := r.validator.Validate(ctx, patch); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	r.mu.Lock()
	note, ok := r.notes[id]
	if !ok {
		r.mu.Unlock()
		return models.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}

	if patch.IsEmpty() {
		current := note.Clone()
		r.mu.Unlock()
		return current, nil
	}

	if note.Apply(patch) {
		note.Title = preview.Title(note.Content, note.ID, r.titleLines)
	}
	r.dirty = true
	updated := note.Clone()

	if r.debounce > 0 {
		r.scheduleLocked()
		r.mu.Unlock()
		return updated, nil
	}
	r.mu.Unlock()

	return updated, r.save(ctx)
}

func (r *noteRegistry) Get(id string) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return models.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return note.Clone(), nil
}

func (r *noteRegistry) List(filter string) []models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Note, 0, len(r.order))
	for _, id := range r.order {
		note := r.notes[id]
		if filter != "" && !preview.Contains(note.Content, note.Title, filter) {
			continue
		}
		out = append(out, note.Clone())
	}
	return out
}

func (r *noteRegistry) Reload(ctx context.Context) error {
	log := logger.FromContext(ctx)

	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	notes, err := r.store.Load(ctx)
	if err != nil {
		log.Err(err).Str("func", "noteRegistry.Reload").Msg("failed to reload notes")
		return fmt.Errorf("reload notes: %w", err)
	}

	r.mu.Lock()
	r.stopTimerLocked()
	r.hydrateLocked(ctx, notes)
	r.mu.Unlock()

	log.Info().Str("func", "noteRegistry.Reload").Int("count", len(notes)).Msg("notes reloaded from store")
	return nil
}

func (r *noteRegistry) Flush(ctx context.Context) error {
	r.mu.Lock()
	r.stopTimerLocked()
	dirty := r.dirty
	r.mu.Unlock()

	if !dirty {
		return nil
	}
	return r.save(ctx)
}

func (r *noteRegistry) Warnings() <-chan error {
	return r.warnings
}

// save writes a snapshot of the collection, retrying once. The in-memory
// state is kept whatever the outcome.
func (r *noteRegistry) save(ctx context.Context) error {
	log := logger.FromContext(ctx)

	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	r.mu.Lock()
	if !r.dirty {
		r.mu.Unlock()
		return nil
	}
	snapshot := r.snapshotLocked()
	r.dirty = false
	r.mu.Unlock()

	err := r.store.Save(ctx, snapshot)
	if err != nil {
		log.Warn().Err(err).Str("func", "noteRegistry.save").Msg("save failed, retrying once")
		err = r.store.Save(ctx, snapshot)
	}
	if err != nil {
		r.mu.Lock()
		r.dirty = true
		r.mu.Unlock()

		log.Err(err).Str("func", "noteRegistry.save").Int("count", len(snapshot)).Msg("failed to save notes")
		if errors.Is(err, store.ErrSaveFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", store.ErrSaveFailed, err)
	}

	return nil
}

// deferredSave runs on the timer goroutine.
func (r *noteRegistry) deferredSave() {
	ctx := r.logger.WithContext(context.Background())
	if err := r.save(ctx); err != nil {
		select {
		case r.warnings <- err:
		default:
			// a warning is already pending
		}
	}
}

func (r *noteRegistry) scheduleLocked() {
	if r.timer == nil {
		r.timer = time.AfterFunc(r.debounce, r.deferredSave)
		return
	}
	r.timer.Reset(r.debounce)
}

func (r *noteRegistry) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
	}
}

func (r *noteRegistry) snapshotLocked() []models.Note {
	out := make([]models.Note, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.notes[id].Clone())
	}
	return out
}

func (r *noteRegistry) newIDLocked() (string, error) {
	for range maxIDAttempts {
		id := r.ids.Generate()
		if _, taken := r.notes[id]; !taken && id != "" {
			return id, nil
		}
	}
	return "", ErrIDCollision
}

func (r *noteRegistry) hydrate(ctx context.Context, notes []models.Note) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hydrateLocked(ctx, notes)
}

// hydrateLocked replaces the collection. Notes without an id are skipped;
// a note with an unusable size gets the default size.
func (r *noteRegistry) hydrateLocked(ctx context.Context, notes []models.Note) {
	r.order = make([]string, 0, len(notes))
	r.notes = make(map[string]*models.Note, len(notes))
	r.dirty = false

	for i, n := range notes {
		if err := r.validator.Validate(ctx, n, validators.FieldID); err != nil {
			r.logger.Warn().Err(err).Str("func", "noteRegistry.hydrate").Int("index", i).Msg("skipping note without id")
			continue
		}
		if _, dup := r.notes[n.ID]; dup {
			continue
		}
		note := n.Clone()
		if err := r.validator.Validate(ctx, note, validators.FieldSize); err != nil {
			r.logger.Warn().Err(err).Str("func", "noteRegistry.hydrate").Str("note_id", note.ID).Msg("restoring default note size")
			note.Size = models.Size{Width: models.DefaultWidth, Height: models.DefaultHeight}
		}
		if note.Title == "" {
			note.Title = preview.Title(note.Content, note.ID, r.titleLines)
		}
		r.order = append(r.order, note.ID)
		r.notes[note.ID] = &note
	}
}
