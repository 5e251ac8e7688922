package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newTestJSONStore(t *testing.T) (*JSONNoteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sticky_notes_data.json")
	return NewJSONNoteStore(path, logger.Nop()), path
}

func sampleNotes() []models.Note {
	a := models.NewNote("0190a6c2-0000-7000-8000-000000000001")
	a.Title = "Groceries"
	a.Content = "Groceries\nmilk"
	a.Visible = true

	b := models.NewNote("0190a6c2-0000-7000-8000-000000000002")
	b.Title = "Call Bob"
	b.Content = "<p>Call Bob</p>"
	b.Position = models.Position{X: 320, Y: 40}
	b.Size = models.Size{Width: 250, Height: 180}
	b.Extra = map[string]json.RawMessage{"color": json.RawMessage(`"yellow"`)}

	return []models.Note{a, b}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ── Load ──────────────────────────────────────────────────────────────────────

func TestJSONNoteStore_Load_MissingFile(t *testing.T) {
	s, _ := newTestJSONStore(t)

	notes, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)

	_, ok := s.Digest()
	assert.False(t, ok)
}

func TestJSONNoteStore_Load_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid json", content: `[{"id": "a",`},
		{name: "top level object", content: `{"id": "a"}`},
		{name: "empty file", content: ``},
		{name: "whitespace only", content: "  \n"},
		{name: "missing id", content: `[{"content": "x"}]`},
		{name: "numeric id", content: `[{"id": 7}]`},
		{name: "empty id", content: `[{"id": ""}]`},
		{name: "duplicate ids", content: `[{"id": "a"}, {"id": "a"}]`},
		{name: "wrong field type", content: `[{"id": "a", "width": "wide"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := newTestJSONStore(t)
			writeFile(t, path, tt.content)

			notes, err := s.Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCorruptStore)
			assert.Nil(t, notes)
		})
	}
}

func TestJSONNoteStore_Load_LegacyDocument(t *testing.T) {
	s, path := newTestJSONStore(t)
	writeFile(t, path, `[
    {"id": "a", "title": "Hello", "content": "<p>Hello</p>", "x": 5, "y": 6, "width": 210, "height": 160},
    {"id": "b"}
]`)

	notes, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, "a", notes[0].ID)
	assert.Equal(t, models.Position{X: 5, Y: 6}, notes[0].Position)
	assert.False(t, notes[0].Visible, "missing visible loads as closed")

	assert.Equal(t, models.Position{X: models.DefaultX, Y: models.DefaultY}, notes[1].Position)
	assert.Equal(t, models.Size{Width: models.DefaultWidth, Height: models.DefaultHeight}, notes[1].Size)

	digest, ok := s.Digest()
	require.True(t, ok)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64(raw), digest)
}

// ── Save ──────────────────────────────────────────────────────────────────────

func TestJSONNoteStore_SaveLoad_RoundTrip(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()
	want := sampleNotes()

	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "note %d differs: want %+v, got %+v", i, want[i], got[i])
	}
}

func TestJSONNoteStore_SaveLoad_Idempotent(t *testing.T) {
	s, path := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleNotes()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, loaded))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestJSONNoteStore_Save_PreservesUnknownFields(t *testing.T) {
	s, path := newTestJSONStore(t)
	ctx := context.Background()
	writeFile(t, path, `[{"id": "a", "content": "x", "pinned": true, "tags": ["work", "urgent"]}]`)

	notes, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, notes))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc []map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, true, doc[0]["pinned"])
	assert.Equal(t, []any{"work", "urgent"}, doc[0]["tags"])
	assert.Equal(t, false, doc[0]["visible"])
}

func TestJSONNoteStore_Save_EmptyWritesArray(t *testing.T) {
	s, path := newTestJSONStore(t)

	require.NoError(t, s.Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}

func TestJSONNoteStore_Save_LeavesNoTempFiles(t *testing.T) {
	s, path := newTestJSONStore(t)
	require.NoError(t, s.Save(context.Background(), sampleNotes()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "leftover %s", e.Name())
	}
}

func TestJSONNoteStore_Save_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	writeFile(t, blocker, "not a directory")

	s := NewJSONNoteStore(filepath.Join(blocker, "notes.json"), logger.Nop())

	err := s.Save(context.Background(), sampleNotes())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSaveFailed)
}

func TestJSONNoteStore_Save_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "notes.json")
	s := NewJSONNoteStore(path, logger.Nop())

	require.NoError(t, s.Save(context.Background(), sampleNotes()))
	assert.FileExists(t, path)
}

// ── Probe ─────────────────────────────────────────────────────────────────────

func TestJSONNoteStore_Probe(t *testing.T) {
	t.Run("writable directory", func(t *testing.T) {
		s, _ := newTestJSONStore(t)
		assert.NoError(t, s.Probe(context.Background()))
	})

	t.Run("parent is a file", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		writeFile(t, blocker, "x")

		s := NewJSONNoteStore(filepath.Join(blocker, "notes.json"), logger.Nop())
		err := s.Probe(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

// ── BackupCorrupt ─────────────────────────────────────────────────────────────

func TestJSONNoteStore_BackupCorrupt(t *testing.T) {
	s, path := newTestJSONStore(t)
	ctx := context.Background()
	writeFile(t, path, `{not json`)

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrCorruptStore)

	backup, err := s.BackupCorrupt(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(backup, path+".corrupt-"))
	assert.NoFileExists(t, path)

	raw, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(raw))

	notes, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestJSONNoteStore_BackupCorrupt_NoFile(t *testing.T) {
	s, _ := newTestJSONStore(t)

	backup, err := s.BackupCorrupt(context.Background())
	require.NoError(t, err)
	assert.Empty(t, backup)
}
