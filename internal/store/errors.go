package store

import "errors"

// Sentinel errors returned by stores to signal well-known failure conditions.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrCorruptStore is returned by Load when the backing file exists but is
	// not valid JSON, is not a database, or violates the note schema.
	ErrCorruptStore = errors.New("notes store is corrupt")

	// ErrSaveFailed is returned by Save when the notes could not be written.
	// The caller's in-memory state is unaffected.
	ErrSaveFailed = errors.New("failed to save notes")

	// ErrStoreUnavailable is returned when the backing location cannot be
	// read or written at all (e.g. the directory is not writable).
	ErrStoreUnavailable = errors.New("notes store is unavailable")

	// ErrUnknownDriver is returned by [NewNoteStore] for an unsupported
	// storage driver.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors wrapped by the SQLite store.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when a DML statement fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning a result row fails.
	ErrScanningRows = errors.New("failed to scan note rows")
)
