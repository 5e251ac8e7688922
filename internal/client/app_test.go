package client

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sticky-notes/internal/app"
	"github.com/MKhiriev/go-sticky-notes/internal/config"
	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/internal/service"
	"github.com/MKhiriev/go-sticky-notes/internal/store"
	"github.com/MKhiriev/go-sticky-notes/internal/tui"
	"github.com/MKhiriev/go-sticky-notes/models"
)

// fakeUI answers startup prompts from a fixed list and runs a script in
// place of the terminal desk.
type fakeUI struct {
	answers   []bool
	confirmed []string

	script  func(ctx context.Context, registry service.NoteRegistry) error
	ran     bool
	session tui.Session
}

func (f *fakeUI) Confirm(_ context.Context, title, _ string) (bool, error) {
	f.confirmed = append(f.confirmed, title)
	if len(f.answers) == 0 {
		return false, errors.New("unexpected prompt: " + title)
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fakeUI) Run(ctx context.Context, registry service.NoteRegistry, session tui.Session) error {
	f.ran = true
	f.session = session
	if f.script != nil {
		return f.script(ctx, registry)
	}
	return nil
}

func jsonConfig(t *testing.T, path string) *config.StructuredConfig {
	t.Helper()
	cfg := config.Defaults()
	cfg.Storage.Driver = config.DriverJSON
	cfg.Storage.Files.NotesPath = path
	return cfg
}

func newTestApp(t *testing.T, cfg *config.StructuredConfig, ui UI) *App {
	t.Helper()
	a, err := NewApp(cfg, ui, logger.Nop())
	require.NoError(t, err)
	return a
}

func loadNotes(t *testing.T, path string) []models.Note {
	t.Helper()
	notes, err := store.NewJSONNoteStore(path, logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	return notes
}

// ── NewApp ──

func TestNewApp_RequiresConfigAndUI(t *testing.T) {
	_, err := NewApp(nil, &fakeUI{}, logger.Nop())
	assert.Error(t, err)

	_, err = NewApp(config.Defaults(), nil, logger.Nop())
	assert.Error(t, err)
}

// ── Run ──

func TestRun_JSONStore_EditsAreFlushedOnExit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	cfg := jsonConfig(t, path)

	ui := &fakeUI{script: func(ctx context.Context, registry service.NoteRegistry) error {
		note, err := registry.Create(ctx)
		if err != nil {
			return err
		}
		_, err = registry.Update(ctx, note.ID, models.ContentPatch("Groceries\nmilk"))
		return err
	}}

	require.NoError(t, newTestApp(t, cfg, ui).Run(context.Background()))

	assert.True(t, ui.ran)
	assert.Empty(t, ui.confirmed)
	assert.Equal(t, path, ui.session.StorePath)
	assert.Empty(t, ui.session.Notice)
	assert.NotNil(t, ui.session.Changes)

	notes := loadNotes(t, path)
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries\nmilk", notes[0].Content)
	assert.Equal(t, "Groceries\nmilk", notes[0].Title)
}

func TestRun_ExistingNotesAreLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	seed := store.NewJSONNoteStore(path, logger.Nop())
	note := models.NewNote("seeded")
	note.Content = "hello"
	require.NoError(t, seed.Save(context.Background(), []models.Note{note}))

	var listed []models.Note
	ui := &fakeUI{script: func(ctx context.Context, registry service.NoteRegistry) error {
		listed = registry.List("")
		return nil
	}}

	require.NoError(t, newTestApp(t, jsonConfig(t, path), ui).Run(context.Background()))

	require.Len(t, listed, 1)
	assert.Equal(t, "seeded", listed[0].ID)
}

func TestRun_UIErrorIsReturnedAfterFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	uiErr := errors.New("terminal went away")

	ui := &fakeUI{script: func(ctx context.Context, registry service.NoteRegistry) error {
		if _, err := registry.Create(ctx); err != nil {
			return err
		}
		return uiErr
	}}

	err := newTestApp(t, jsonConfig(t, path), ui).Run(context.Background())
	require.ErrorIs(t, err, uiErr)
	assert.Len(t, loadNotes(t, path), 1)
}

func TestRun_FailedFinalSaveIsReportedButNotFatal(t *testing.T) {
	sub := filepath.Join(t.TempDir(), "sub")
	path := filepath.Join(sub, "notes.json")
	cfg := jsonConfig(t, path)
	cfg.Watch.Disabled = true

	ui := &fakeUI{script: func(ctx context.Context, registry service.NoteRegistry) error {
		note, err := registry.Create(ctx)
		if err != nil {
			return err
		}
		if _, err = registry.Update(ctx, note.ID, models.ContentPatch("unsaved")); err != nil {
			return err
		}
		// the notes directory turns into a regular file before quitting
		if err = os.RemoveAll(sub); err != nil {
			return err
		}
		return os.WriteFile(sub, []byte("x"), 0o644)
	}}

	a := newTestApp(t, cfg, ui)
	var stderr bytes.Buffer
	a.stderr = &stderr

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, stderr.String(), "last changes were not saved")
	assert.Contains(t, stderr.String(), path)
}

func TestRun_CorruptFile_AcceptBacksUpAndStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var listed []models.Note
	ui := &fakeUI{answers: []bool{true}, script: func(ctx context.Context, registry service.NoteRegistry) error {
		listed = registry.List("")
		return nil
	}}

	require.NoError(t, newTestApp(t, jsonConfig(t, path), ui).Run(context.Background()))

	assert.Equal(t, []string{app.TitleCorruptStore}, ui.confirmed)
	assert.Empty(t, listed)
	assert.Contains(t, ui.session.Notice, path+".corrupt-")

	backups, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestRun_CorruptFile_DeclineExitsWithoutTouchingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("[1, 2"), 0o644))

	ui := &fakeUI{answers: []bool{false}}
	err := newTestApp(t, jsonConfig(t, path), ui).Run(context.Background())

	require.ErrorIs(t, err, ErrUserDeclined)
	assert.ErrorIs(t, err, store.ErrCorruptStore)
	assert.False(t, ui.ran)

	data, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, "[1, 2", string(data))
}

func TestRun_UnavailableStore_AcceptRunsInMemory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	path := filepath.Join(blocker, "notes.json")

	ui := &fakeUI{answers: []bool{true}, script: func(ctx context.Context, registry service.NoteRegistry) error {
		_, err := registry.Create(ctx)
		return err
	}}

	require.NoError(t, newTestApp(t, jsonConfig(t, path), ui).Run(context.Background()))

	assert.Equal(t, []string{app.TitleStorageUnavailable}, ui.confirmed)
	assert.True(t, ui.ran)
	assert.Equal(t, memoryLocation, ui.session.StorePath)
	assert.Equal(t, app.MsgMemoryOnly, ui.session.Notice)
	assert.Nil(t, ui.session.Changes)
}

func TestRun_UnavailableStore_DeclineExits(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	ui := &fakeUI{answers: []bool{false}}
	err := newTestApp(t, jsonConfig(t, filepath.Join(blocker, "notes.json")), ui).Run(context.Background())

	require.ErrorIs(t, err, ErrUserDeclined)
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
	assert.False(t, ui.ran)
}

func TestRun_UnknownDriver_FailsWithoutPrompt(t *testing.T) {
	cfg := config.Defaults()
	cfg.Storage.Driver = "etcd"

	ui := &fakeUI{}
	err := newTestApp(t, cfg, ui).Run(context.Background())

	require.ErrorIs(t, err, store.ErrUnknownDriver)
	assert.Empty(t, ui.confirmed)
	assert.False(t, ui.ran)
}

func TestRun_WatcherOnlyForJSONWhenEnabled(t *testing.T) {
	tests := []struct {
		name        string
		configure   func(cfg *config.StructuredConfig)
		wantChanges bool
	}{
		{
			name:        "json driver",
			configure:   func(cfg *config.StructuredConfig) {},
			wantChanges: true,
		},
		{
			name:      "json driver with watch disabled",
			configure: func(cfg *config.StructuredConfig) { cfg.Watch.Disabled = true },
		},
		{
			name:      "memory driver",
			configure: func(cfg *config.StructuredConfig) { cfg.Storage.Driver = config.DriverMemory },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := jsonConfig(t, filepath.Join(t.TempDir(), "notes.json"))
			tt.configure(cfg)

			ui := &fakeUI{}
			require.NoError(t, newTestApp(t, cfg, ui).Run(context.Background()))

			if tt.wantChanges {
				assert.NotNil(t, ui.session.Changes)
			} else {
				assert.Nil(t, ui.session.Changes)
			}
		})
	}
}
