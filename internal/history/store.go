package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema (entries table)
const currentSchemaVersion = 1

// Options configures a Store.
type Options struct {
	// MaxRecordsPerElement caps how many records a single element may
	// accumulate within one entry. Zero means unlimited.
	MaxRecordsPerElement int

	// Clock overrides the capture timestamp source (Unix milliseconds).
	// Nil uses the wall clock. Tests and replay harnesses inject a fixed
	// clock for deterministic records.
	Clock func() int64
}

// Store provides durable storage for interaction history entries.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db            *sql.DB
	maxPerElement int
	now           func() int64
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// multiple times on the same path.
func Open(path string, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// SQLite supports one writer at a time; a single-connection pool
	// avoids SQLITE_BUSY and serializes read-modify-write mutations.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	now := opts.Clock
	if now == nil {
		now = func() int64 { return time.Now().UnixMilli() }
	}

	return &Store{
		db:            db,
		maxPerElement: opts.MaxRecordsPerElement,
		now:           now,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and records the schema
// version. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	// No incremental migrations yet; version 1 is the initial schema.
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}

	return nil
}

// loadEntry reads one entry inside the given querier (tx or db).
// Returns found=false if the key has no entry.
func loadEntry(ctx context.Context, q querier, key string) (Entry, bool, error) {
	var recordsJSON string
	err := q.QueryRowContext(ctx, `SELECT records FROM entries WHERE key = ?`, key).Scan(&recordsJSON)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get entry %q: %w", key, err)
	}

	entry, err := unmarshalEntry(key, recordsJSON)
	if err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

// querier abstracts *sql.DB and *sql.Tx for shared read helpers.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
