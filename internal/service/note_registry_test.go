// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/internal/mock"
	"github.com/MKhiriev/go-sticky-notes/internal/preview"
	"github.com/MKhiriev/go-sticky-notes/internal/store"
	"github.com/MKhiriev/go-sticky-notes/internal/utils"
	"github.com/MKhiriev/go-sticky-notes/internal/validators"
	"github.com/MKhiriev/go-sticky-notes/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// countingStore wraps a real store and records every save.
type countingStore struct {
	store.NoteStore

	mu    sync.Mutex
	saves [][]models.Note
	fail  int
}

func (c *countingStore) Save(ctx context.Context, notes []models.Note) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fail > 0 {
		c.fail--
		return store.ErrSaveFailed
	}
	c.saves = append(c.saves, notes)
	return c.NoteStore.Save(ctx, notes)
}

func (c *countingStore) saveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.saves)
}

func newMemoryRegistry(t *testing.T, opts ...RegistryOption) (NoteRegistry, *countingStore) {
	t.Helper()
	s := &countingStore{NoteStore: store.NewMemoryNoteStore()}
	return NewNoteRegistry(s, nil, opts...), s
}

func createNote(t *testing.T, r NoteRegistry, content string) models.Note {
	t.Helper()
	n, err := r.Create(context.Background())
	require.NoError(t, err)
	if content == "" {
		return n
	}
	n, err = r.Update(context.Background(), n.ID, models.ContentPatch(content))
	require.NoError(t, err)
	return n
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestNoteRegistry_Create_Defaults(t *testing.T) {
	r, s := newMemoryRegistry(t, WithIDGenerator(utils.NewSequenceGenerator("0190a6c2-aaaa-7000-8000-000000000001")))

	n, err := r.Create(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0190a6c2-aaaa-7000-8000-000000000001", n.ID)
	assert.Equal(t, "", n.Content)
	assert.Equal(t, "New Note 0190a6c2", n.Title)
	assert.Equal(t, models.Position{X: 100, Y: 100}, n.Position)
	assert.Equal(t, models.Size{Width: 400, Height: 300}, n.Size)
	assert.False(t, n.Visible)

	assert.Equal(t, 1, s.saveCount(), "create saves inline")
	stored, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, n.ID, stored[0].ID)
}

func TestNoteRegistry_Create_DistinctIDs(t *testing.T) {
	r, _ := newMemoryRegistry(t)

	a := createNote(t, r, "")
	b := createNote(t, r, "")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, r.List(""), 2)
}

func TestNoteRegistry_Create_RegeneratesTakenID(t *testing.T) {
	r, _ := newMemoryRegistry(t, WithIDGenerator(utils.NewSequenceGenerator("same", "same", "other")))

	a := createNote(t, r, "")
	b := createNote(t, r, "")

	assert.Equal(t, "same", a.ID)
	assert.Equal(t, "other", b.ID)
}

func TestNoteRegistry_Create_IDCollision(t *testing.T) {
	ids := make([]string, maxIDAttempts+1)
	for i := range ids {
		ids[i] = "dup"
	}
	r, _ := newMemoryRegistry(t, WithIDGenerator(utils.NewSequenceGenerator(ids...)))

	createNote(t, r, "")
	_, err := r.Create(context.Background())
	assert.ErrorIs(t, err, ErrIDCollision)
	assert.Len(t, r.List(""), 1)
}

// ── Update ────────────────────────────────────────────────────────────────────

func TestNoteRegistry_Update(t *testing.T) {
	r, s := newMemoryRegistry(t)
	ctx := context.Background()
	n := createNote(t, r, "")

	updated, err := r.Update(ctx, n.ID, models.ContentPatch("Shopping\nmilk\neggs"))
	require.NoError(t, err)
	assert.Equal(t, "Shopping\nmilk\neggs", updated.Content)
	assert.Equal(t, "Shopping\nmilk\neggs", updated.Title)

	pos := models.Position{X: 5, Y: 7}
	updated, err = r.Update(ctx, n.ID, models.NotePatch{Position: &pos, Visible: utils.Ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, pos, updated.Position)
	assert.True(t, updated.Visible)
	assert.Equal(t, "Shopping\nmilk\neggs", updated.Content, "nil fields are left unchanged")

	got, err := r.Get(n.ID)
	require.NoError(t, err)
	assert.True(t, got.Equal(updated))

	stored, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Equal(updated), "every mutation reaches the store")
}

func TestNoteRegistry_Update_TitleFromFirstLines(t *testing.T) {
	r, _ := newMemoryRegistry(t, WithTitleLines(2))
	n := createNote(t, r, "<html><body><p>one</p><p>two</p><p>three</p></body></html>")

	assert.Equal(t, "one\ntwo", n.Title)

	n, err := r.Update(context.Background(), n.ID, models.ContentPatch(""))
	require.NoError(t, err)
	assert.Equal(t, preview.FallbackTitle(n.ID), n.Title)
}

func TestNoteRegistry_Update_NotFound(t *testing.T) {
	r, s := newMemoryRegistry(t)

	_, err := r.Update(context.Background(), "missing", models.ContentPatch("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.Empty(t, r.List(""), "update never creates a note")
	assert.Equal(t, 0, s.saveCount())
}

func TestNoteRegistry_Update_EmptyPatchDoesNotSave(t *testing.T) {
	r, s := newMemoryRegistry(t)
	n := createNote(t, r, "")
	before := s.saveCount()

	got, err := r.Update(context.Background(), n.ID, models.NotePatch{})
	require.NoError(t, err)
	assert.True(t, got.Equal(n))
	assert.Equal(t, before, s.saveCount())
}

func TestNoteRegistry_Update_InvalidPatch(t *testing.T) {
	r, s := newMemoryRegistry(t)
	n := createNote(t, r, "keep")
	before := s.saveCount()

	_, err := r.Update(context.Background(), n.ID,
		models.GeometryPatch(models.Position{X: 5, Y: 5}, models.Size{Width: 0, Height: 150}))
	require.ErrorIs(t, err, ErrInvalidPatch)
	assert.ErrorIs(t, err, validators.ErrInvalidSize)

	got, gerr := r.Get(n.ID)
	require.NoError(t, gerr)
	assert.Equal(t, n.Size, got.Size)
	assert.Equal(t, before, s.saveCount())
}

func TestNoteRegistry_HydrateRepairsInvalidNotes(t *testing.T) {
	broken := models.NewNote("broken")
	broken.Size = models.Size{Width: 0, Height: -1}
	noID := models.NewNote("")
	noID.Content = "orphan"
	fine := models.NewNote("fine")
	fine.Size = models.Size{Width: 250, Height: 180}

	s := store.NewMemoryNoteStore()
	require.NoError(t, s.Save(context.Background(), []models.Note{broken, noID, fine}))
	loaded, err := s.Load(context.Background())
	require.NoError(t, err)

	for name, r := range map[string]NoteRegistry{
		"constructor": NewNoteRegistry(s, loaded),
		"reload": func() NoteRegistry {
			r := NewNoteRegistry(s, nil)
			require.NoError(t, r.Reload(context.Background()))
			return r
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			notes := r.List("")
			require.Len(t, notes, 2)
			assert.Equal(t, "broken", notes[0].ID)
			assert.Equal(t, models.Size{Width: models.DefaultWidth, Height: models.DefaultHeight}, notes[0].Size)
			assert.Equal(t, "fine", notes[1].ID)
			assert.Equal(t, models.Size{Width: 250, Height: 180}, notes[1].Size)
		})
	}
}

// rejectAll refuses every patch.
type rejectAll struct{}

func (rejectAll) Validate(context.Context, any, ...string) error {
	return validators.ErrUnsupportedType
}

func TestNoteRegistry_WithValidator(t *testing.T) {
	r, _ := newMemoryRegistry(t, WithValidator(rejectAll{}))
	n, err := r.Create(context.Background())
	require.NoError(t, err)

	_, err = r.Update(context.Background(), n.ID, models.ContentPatch("x"))
	assert.ErrorIs(t, err, ErrInvalidPatch)
}

func TestNoteRegistry_ReturnsCopies(t *testing.T) {
	r, _ := newMemoryRegistry(t)
	n := createNote(t, r, "original")

	n.Content = "mutated by caller"
	listed := r.List("")
	listed[0].Content = "mutated via list"

	got, err := r.Get(n.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Content)
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestNoteRegistry_Delete(t *testing.T) {
	r, s := newMemoryRegistry(t)
	ctx := context.Background()
	a := createNote(t, r, "a")
	b := createNote(t, r, "b")

	require.NoError(t, r.Delete(ctx, a.ID))

	_, err := r.Get(a.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	list := r.List("")
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	stored, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, b.ID, stored[0].ID)
}

func TestNoteRegistry_Delete_MissingIsNoop(t *testing.T) {
	r, s := newMemoryRegistry(t)
	createNote(t, r, "")
	before := s.saveCount()

	require.NoError(t, r.Delete(context.Background(), "missing"))
	assert.Equal(t, before, s.saveCount(), "no save for a missing id")
	assert.Len(t, r.List(""), 1)
}

func TestNoteRegistry_Delete_ThenUpdateNotFound(t *testing.T) {
	r, _ := newMemoryRegistry(t)
	n := createNote(t, r, "")

	require.NoError(t, r.Delete(context.Background(), n.ID))

	_, err := r.Update(context.Background(), n.ID, models.ContentPatch("late edit"))
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.Empty(t, r.List(""))
}

// ── List ──────────────────────────────────────────────────────────────────────

func TestNoteRegistry_List(t *testing.T) {
	r, _ := newMemoryRegistry(t)
	groceries := createNote(t, r, "Groceries: Milk")
	meeting := createNote(t, r, "<!DOCTYPE HTML><html><body><p>Team <b>meeting</b></p></body></html>")
	empty := createNote(t, r, "")
	generic := createNote(t, r, "generic List<T> type")

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{name: "empty filter returns all in creation order", filter: "", want: []string{groceries.ID, meeting.ID, empty.ID, generic.ID}},
		{name: "case-insensitive", filter: "milk", want: []string{groceries.ID}},
		{name: "markup is stripped", filter: "team meeting", want: []string{meeting.ID}},
		{name: "tags of html documents do not match", filter: "<b>", want: nil},
		{name: "angle brackets in plain text match", filter: "list<t>", want: []string{generic.ID}},
		{name: "fallback title matches", filter: "new note", want: []string{empty.ID}},
		{name: "no match", filter: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, n := range r.List(tt.filter) {
				got = append(got, n.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Save failures ─────────────────────────────────────────────────────────────

func TestNoteRegistry_SaveRetriedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockNoteStore(ctrl)
	r := NewNoteRegistry(mockStore, nil)

	gomock.InOrder(
		mockStore.EXPECT().Save(gomock.Any(), gomock.Len(1)).Return(store.ErrSaveFailed),
		mockStore.EXPECT().Save(gomock.Any(), gomock.Len(1)).Return(nil),
	)

	n, err := r.Create(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
}

func TestNoteRegistry_SaveFailureKeepsMemoryState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockNoteStore(ctrl)
	r := NewNoteRegistry(mockStore, nil)
	ioErr := errors.New("disk full")

	mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(ioErr).Times(2)

	n, err := r.Create(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrSaveFailed)
	assert.ErrorIs(t, err, ioErr)

	got, getErr := r.Get(n.ID)
	require.NoError(t, getErr, "note stays in memory after a failed save")
	assert.Equal(t, n.ID, got.ID)

	// the next successful save carries the pending change
	mockStore.EXPECT().Save(gomock.Any(), gomock.Len(1)).Return(nil)
	require.NoError(t, r.Flush(context.Background()))
}

func TestNoteRegistry_Flush_NothingPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockNoteStore(ctrl)
	r := NewNoteRegistry(mockStore, []models.Note{models.NewNote("a")})

	// no Save expected
	require.NoError(t, r.Flush(context.Background()))
}

// ── Debounce ──────────────────────────────────────────────────────────────────

func TestNoteRegistry_Debounce_CoalescesUpdates(t *testing.T) {
	r, s := newMemoryRegistry(t, WithDebounce(30*time.Millisecond))
	ctx := context.Background()
	n := createNote(t, r, "")
	afterCreate := s.saveCount()

	for _, text := range []string{"a", "ab", "abc"} {
		_, err := r.Update(ctx, n.ID, models.ContentPatch(text))
		require.NoError(t, err)
	}
	assert.Equal(t, afterCreate, s.saveCount(), "updates wait for the timer")

	require.Eventually(t, func() bool { return s.saveCount() == afterCreate+1 }, 2*time.Second, 10*time.Millisecond)

	stored, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", stored[0].Content)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, afterCreate+1, s.saveCount(), "exactly one deferred save")
}

func TestNoteRegistry_Debounce_FlushWritesPending(t *testing.T) {
	r, s := newMemoryRegistry(t, WithDebounce(time.Hour))
	ctx := context.Background()
	n := createNote(t, r, "")

	_, err := r.Update(ctx, n.ID, models.ContentPatch("pending"))
	require.NoError(t, err)

	require.NoError(t, r.Flush(ctx))
	stored, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pending", stored[0].Content)
}

func TestNoteRegistry_Debounce_CreateSavesPendingUpdate(t *testing.T) {
	r, s := newMemoryRegistry(t, WithDebounce(time.Hour))
	ctx := context.Background()
	n := createNote(t, r, "")

	_, err := r.Update(ctx, n.ID, models.ContentPatch("pending"))
	require.NoError(t, err)
	createNote(t, r, "")

	stored, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "pending", stored[0].Content)
}

func TestNoteRegistry_Debounce_FailureBecomesWarning(t *testing.T) {
	r, s := newMemoryRegistry(t, WithDebounce(10*time.Millisecond), WithLogger(logger.Nop()))
	n := createNote(t, r, "")

	s.mu.Lock()
	s.fail = 2
	s.mu.Unlock()

	_, err := r.Update(context.Background(), n.ID, models.ContentPatch("x"))
	require.NoError(t, err)

	select {
	case warn := <-r.Warnings():
		assert.ErrorIs(t, warn, store.ErrSaveFailed)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a save warning")
	}
}

// ── Reload ────────────────────────────────────────────────────────────────────

func TestNoteRegistry_Reload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sticky_notes_data.json")
	js := store.NewJSONNoteStore(path, logger.Nop())

	r := NewNoteRegistry(js, nil)
	n := createNote(t, r, "first")

	other := store.NewJSONNoteStore(path, logger.Nop())
	external := models.NewNote("external")
	external.Content = "written elsewhere"
	require.NoError(t, other.Save(ctx, []models.Note{external}))

	require.NoError(t, r.Reload(ctx))

	_, err := r.Get(n.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	got, err := r.Get("external")
	require.NoError(t, err)
	assert.Equal(t, "written elsewhere", got.Content)
	assert.Equal(t, "written elsewhere", got.Title, "missing titles are derived on load")
}

func TestNoteRegistry_Reload_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockNoteStore(ctrl)
	r := NewNoteRegistry(mockStore, []models.Note{models.NewNote("kept")})

	mockStore.EXPECT().Load(gomock.Any()).Return(nil, store.ErrCorruptStore)

	err := r.Reload(context.Background())
	assert.ErrorIs(t, err, store.ErrCorruptStore)

	_, err = r.Get("kept")
	assert.NoError(t, err, "state is untouched when reload fails")
}

// ── scenarios ─────────────────────────────────────────────────────────────────

func TestNoteRegistry_AbsentFileScenario(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sticky_notes_data.json")
	js := store.NewJSONNoteStore(path, logger.Nop())

	notes, err := js.Load(ctx)
	require.NoError(t, err)
	r := NewNoteRegistry(js, notes)
	assert.Empty(t, r.List(""))

	n := createNote(t, r, "")

	reopened, err := store.NewJSONNoteStore(path, logger.Nop()).Load(ctx)
	require.NoError(t, err)
	require.Len(t, reopened, 1)
	assert.Equal(t, n.ID, reopened[0].ID)
	assert.Equal(t, "", reopened[0].Content)
	assert.Equal(t, models.Position{X: 100, Y: 100}, reopened[0].Position)
	assert.Equal(t, models.Size{Width: 400, Height: 300}, reopened[0].Size)
}

func TestNoteRegistry_RandomOperationsSurviveReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sticky_notes_data.json")
	r := NewNoteRegistry(store.NewJSONNoteStore(path, logger.Nop()), nil, WithDebounce(time.Hour))

	rng := rand.New(rand.NewPCG(1, 2))
	words := []string{"milk", "Vec<T>", "a<b>c", "заметка", "日本", "\n", "  ", "TODO", "&amp;"}
	randomText := func() string {
		var b strings.Builder
		for range rng.IntN(6) {
			b.WriteString(words[rng.IntN(len(words))])
		}
		return b.String()
	}

	var ids []string
	for range 300 {
		switch op := rng.IntN(10); {
		case op < 3 || len(ids) == 0:
			n, err := r.Create(ctx)
			require.NoError(t, err)
			ids = append(ids, n.ID)
		case op < 4:
			i := rng.IntN(len(ids))
			require.NoError(t, r.Delete(ctx, ids[i]))
			ids = append(ids[:i], ids[i+1:]...)
		default:
			id := ids[rng.IntN(len(ids))]
			patch := models.ContentPatch(randomText())
			if rng.IntN(2) == 0 {
				pos := models.Position{X: rng.IntN(3000) - 500, Y: rng.IntN(3000)}
				size := models.Size{Width: 200 + rng.IntN(600), Height: 150 + rng.IntN(600)}
				visible := rng.IntN(2) == 0
				patch = models.NotePatch{Position: &pos, Size: &size, Visible: &visible}
			}
			_, err := r.Update(ctx, id, patch)
			require.NoError(t, err)
		}
	}
	require.NoError(t, r.Flush(ctx))

	want := r.List("")
	require.Len(t, want, len(ids))

	reloaded, err := store.NewJSONNoteStore(path, logger.Nop()).Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, len(want))
	for i := range want {
		assert.Equal(t, ids[i], reloaded[i].ID)
		assert.True(t, want[i].Equal(reloaded[i]), "note %d differs after reload", i)
	}

	fresh := NewNoteRegistry(store.NewJSONNoteStore(path, logger.Nop()), reloaded)
	got := fresh.List("")
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "note %d differs in the reloaded registry", i)
	}
}

func TestNoteRegistry_ConcurrentUse(t *testing.T) {
	r, _ := newMemoryRegistry(t, WithDebounce(time.Millisecond))
	ctx := context.Background()
	n := createNote(t, r, "")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 20 {
				pos := models.Position{X: i, Y: j}
				_, _ = r.Update(ctx, n.ID, models.NotePatch{Position: &pos})
				_ = r.List("")
			}
		}()
	}
	wg.Wait()

	require.NoError(t, r.Flush(ctx))
}
