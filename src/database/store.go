// backend/src/database/store.go
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store is the storage provider for the planner's persisted state. Each
// logical collection (transactions, vaults, settlement map, ...) is one JSON
// document under a stable key in the documents table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load fetches one document by key. The second return value reports whether
// the key exists; a fresh database has no documents at all.
func (s *Store) Load(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading document %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Save upserts one document.
func (s *Store) Save(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving document %q: %w", key, err)
	}
	return nil
}

// Delete removes one document. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting document %q: %w", key, err)
	}
	return nil
}
