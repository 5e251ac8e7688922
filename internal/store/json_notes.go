// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/models"
)

// JSONNoteStore keeps the notes in a single JSON document: an array of note
// objects in creation order.
//
// It remembers the xxhash digest of the bytes it last read or wrote so that
// a [FileWatcher] can tell its own writes from edits made by someone else.
type JSONNoteStore struct {
	path   string
	logger *logger.Logger

	mu        sync.Mutex
	digest    uint64
	hasDigest bool
}

// NewJSONNoteStore returns a store for the document at path. Nothing is read
// or created until Load, Save or Probe is called.
func NewJSONNoteStore(path string, log *logger.Logger) *JSONNoteStore {
	return &JSONNoteStore{
		path:   filepath.Clean(path),
		logger: log,
	}
}

// Path returns the location of the document.
func (s *JSONNoteStore) Path() string {
	return s.path
}

// Digest returns the digest of the document as last seen by the store. ok is
// false before the first successful Load or Save, and after Load found no
// file.
func (s *JSONNoteStore) Digest() (digest uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.digest, s.hasDigest
}

// Load implements [NoteStore].
func (s *JSONNoteStore) Load(ctx context.Context) ([]models.Note, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Str("path", s.path).Msg("notes file does not exist, starting empty")
			s.forgetDigest()
			return []models.Note{}, nil
		}
		s.logger.Err(err).Str("func", "JSONNoteStore.Load").Str("path", s.path).Msg("failed to read notes file")
		return nil, fmt.Errorf("%w: read %s: %v", ErrStoreUnavailable, s.path, err)
	}

	notes, err := decodeNotes(data)
	if err != nil {
		s.logger.Err(err).Str("func", "JSONNoteStore.Load").Str("path", s.path).Msg("notes file is corrupt")
		return nil, err
	}

	s.rememberDigest(data)
	s.logger.Debug().Str("path", s.path).Int("count", len(notes)).Msg("notes loaded")

	return notes, nil
}

// Save implements [NoteStore]. The document is replaced atomically.
func (s *JSONNoteStore) Save(ctx context.Context, notes []models.Note) error {
	data, err := encodeNotes(notes)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrSaveFailed, err)
	}

	if err := s.ensureDir(); err != nil {
		s.logger.Err(err).Str("func", "JSONNoteStore.Save").Str("path", s.path).Msg("failed to create notes directory")
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		s.logger.Err(err).Str("func", "JSONNoteStore.Save").Str("path", s.path).Msg("failed to write notes file")
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	s.rememberDigest(data)
	s.logger.Debug().Str("path", s.path).Int("count", len(notes)).Msg("notes saved")

	return nil
}

// Probe implements [NoteStore] by creating and removing a temp file next to
// the document.
func (s *JSONNoteStore) Probe(ctx context.Context) error {
	return probeDir(filepath.Dir(s.path))
}

// BackupCorrupt implements [CorruptionRecoverer]. The document is renamed to
// "<path>.corrupt-<unix seconds>".
func (s *JSONNoteStore) BackupCorrupt(ctx context.Context) (string, error) {
	backup := s.path + ".corrupt-" + strconv.FormatInt(time.Now().Unix(), 10)
	if err := os.Rename(s.path, backup); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("backup corrupt notes file: %w", err)
	}

	s.forgetDigest()
	s.logger.Warn().Str("path", s.path).Str("backup", backup).Msg("corrupt notes file moved aside")

	return backup, nil
}

// Close implements [NoteStore]. The JSON store holds no open resources.
func (s *JSONNoteStore) Close() error {
	return nil
}

func (s *JSONNoteStore) ensureDir() error {
	dir := filepath.Dir(s.path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *JSONNoteStore) rememberDigest(data []byte) {
	s.mu.Lock()
	s.digest = xxhash.Sum64(data)
	s.hasDigest = true
	s.mu.Unlock()
}

func (s *JSONNoteStore) forgetDigest() {
	s.mu.Lock()
	s.digest = 0
	s.hasDigest = false
	s.mu.Unlock()
}

// decodeNotes parses a document. The top level must be an array and ids must
// be unique.
func decodeNotes(data []byte) ([]models.Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top level is not an array", ErrCorruptStore)
	}

	var notes []models.Note
	if err := json.Unmarshal(trimmed, &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	seen := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate note id %q", ErrCorruptStore, n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func encodeNotes(notes []models.Note) ([]byte, error) {
	if notes == nil {
		notes = []models.Note{}
	}
	return json.MarshalIndent(notes, "", "    ")
}
