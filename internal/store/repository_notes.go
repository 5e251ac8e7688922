// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/models"
)

// sqliteNoteStore persists notes as rows of the notes table. Row order is
// kept in the position_idx column.
type sqliteNoteStore struct {
	mu       sync.Mutex
	db       *DB
	logger   *logger.Logger
	migrated bool
}

// NewSQLiteNoteStore wraps an open connection. Migrations run on first use.
func NewSQLiteNoteStore(db *DB, log *logger.Logger) NoteStore {
	return &sqliteNoteStore{
		db:     db,
		logger: log,
	}
}

// Load implements [NoteStore].
func (s *sqliteNoteStore) Load(ctx context.Context) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	if err := s.ensureSchema(); err != nil {
		return nil, err
	}

	query, args, err := buildSelectNotesQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqliteNoteStore.Load").Msg("failed to query notes")
		return nil, classifySQLiteError(err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var (
			n     models.Note
			extra sql.NullString
		)
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Content,
			&n.Position.X, &n.Position.Y, &n.Size.Width, &n.Size.Height,
			&n.Visible, &extra,
		); err != nil {
			log.Err(err).Str("func", "sqliteNoteStore.Load").Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w: %v", ErrCorruptStore, ErrScanningRows, err)
		}

		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &n.Extra); err != nil {
				return nil, fmt.Errorf("%w: note %s: extra fields: %v", ErrCorruptStore, n.ID, err)
			}
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "sqliteNoteStore.Load").Msg("error iterating note rows")
		return nil, classifySQLiteError(err)
	}

	log.Debug().Str("func", "sqliteNoteStore.Load").Int("count", len(notes)).Msg("notes loaded")
	return notes, nil
}

// Save implements [NoteStore]. All rows are replaced in a single transaction.
func (s *sqliteNoteStore) Save(ctx context.Context, notes []models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	deleteQuery, deleteArgs, err := buildDeleteNotesQuery()
	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrSaveFailed, ErrBuildingSQLQuery, err)
	}
	insertQueries, insertArgs, err := buildInsertNotesQueries(notes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "sqliteNoteStore.Save").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w: %v", ErrSaveFailed, ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).Str("func", "sqliteNoteStore.Save").Msg("failed to clear notes table")
		return fmt.Errorf("%w: %w: %v", ErrSaveFailed, ErrExecutingStatement, err)
	}

	for i, query := range insertQueries {
		if _, err := tx.ExecContext(ctx, query, insertArgs[i]...); err != nil {
			log.Err(err).
				Str("func", "sqliteNoteStore.Save").
				Int("chunk", i).
				Msg("failed to insert notes")
			return fmt.Errorf("%w: %w: %v", ErrSaveFailed, ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "sqliteNoteStore.Save").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w: %v", ErrSaveFailed, ErrCommitingTransaction, err)
	}

	log.Debug().Str("func", "sqliteNoteStore.Save").Int("count", len(notes)).Msg("notes saved")
	return nil
}

// Probe implements [NoteStore].
func (s *sqliteNoteStore) Probe(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	path := sqliteFilePath(s.db.dsn)
	if path == "" {
		return nil
	}
	return probeDir(filepath.Dir(path))
}

// BackupCorrupt implements [CorruptionRecoverer]: the connection is closed,
// the database file renamed, and a fresh connection opened on the same DSN.
func (s *sqliteNoteStore) BackupCorrupt(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := sqliteFilePath(s.db.dsn)
	if path == "" {
		return "", fmt.Errorf("backup corrupt database: %q is not a file", s.db.dsn)
	}

	if err := s.db.Close(); err != nil {
		s.logger.Err(err).Str("func", "sqliteNoteStore.BackupCorrupt").Msg("failed to close database")
	}

	backup := path + ".corrupt-" + strconv.FormatInt(time.Now().Unix(), 10)
	if err := os.Rename(path, backup); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("backup corrupt database: %w", err)
	}

	conn, err := sql.Open("sqlite3", s.db.dsn)
	if err != nil {
		return "", fmt.Errorf("%w: reopen database: %v", ErrStoreUnavailable, err)
	}
	s.db.DB = conn
	s.migrated = false

	s.logger.Warn().Str("path", path).Str("backup", backup).Msg("corrupt database moved aside")
	return backup, nil
}

// Close implements [NoteStore].
func (s *sqliteNoteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteNoteStore) ensureSchema() error {
	if s.migrated {
		return nil
	}
	if err := s.db.Migrate(); err != nil {
		s.logger.Err(err).Str("func", "sqliteNoteStore.ensureSchema").Msg("failed to migrate database")
		return classifySQLiteError(err)
	}
	s.migrated = true
	return nil
}

// classifySQLiteError maps "not a database" and "malformed" driver errors to
// ErrCorruptStore and everything else to ErrStoreUnavailable.
func classifySQLiteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrNotADB, sqlite3.ErrCorrupt:
			return fmt.Errorf("%w: %v", ErrCorruptStore, err)
		}
	}
	// goose flattens some driver errors into plain text
	msg := err.Error()
	if strings.Contains(msg, "file is not a database") || strings.Contains(msg, "database disk image is malformed") {
		return fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// sqliteFilePath extracts the file name from a DSN such as
// "file:notes.db?cache=shared". In-memory DSNs yield "".
func sqliteFilePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}
