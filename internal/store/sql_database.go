package store

import (
	"database/sql"

	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/migrations"
)

// DB wraps the SQLite connection used by the sqlite note store.
type DB struct {
	*sql.DB
	dsn    string
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
