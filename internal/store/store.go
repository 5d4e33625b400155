// Package store keeps punchclock's two storage blobs, the record log and the
// work-time budget, in a SQLite file.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrStorage wraps every failure to read or write the database.
var ErrStorage = errors.New("storage error")

const memoryPath = ":memory:"

// migrations run in order; the schema version is the number applied so far.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS blobs (
		key         TEXT PRIMARY KEY,
		value       TEXT NOT NULL,
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	)`,
}

var currentVersion = len(migrations)

// Store is a key/value blob store on top of SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and brings its schema up to
// date.
func New(dbPath string) (*Store, error) {
	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: an in-memory database lives and dies with it.
	db.SetMaxOpenConns(1)

	for _, p := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(memoryPath)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	for ; version < currentVersion; version++ {
		if _, err := s.db.Exec(migrations[version]); err != nil {
			return fmt.Errorf("schema v%d: %w", version+1, err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version+1)); err != nil {
			return err
		}
	}
	return nil
}
