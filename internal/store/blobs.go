package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Get returns the value stored under key. ok is false when the key is absent.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %q: %w", ErrStorage, key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("%w: set %q: %w", ErrStorage, key, err)
	}
	return nil
}

// Remove deletes all keys in one transaction. Missing keys are ignored.
func (s *Store) Remove(keys ...string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin remove: %w", ErrStorage, err)
	}
	for _, k := range keys {
		if _, err := tx.Exec(`DELETE FROM blobs WHERE key = ?`, k); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: remove %q: %w", ErrStorage, k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit remove: %w", ErrStorage, err)
	}
	return nil
}

// Keys lists the stored keys in order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM blobs ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("%w: list keys: %w", ErrStorage, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
