// Package bookmarks persists the user's bookmarked proposal identifiers in a
// local bbolt file, the durable stand-in for browser local storage. The core
// never touches this package directly; the host shell writes on
// PersistBookmarks effects and reads once at startup.
package bookmarks

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketAgenda = "agenda"
	keyBookmarks = "bookmarks"
)

// Store is a bbolt-backed bookmark store.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the store file and ensures the bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("bookmarks: open db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketAgenda))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bookmarks: init bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns the persisted bookmark identifiers. An absent key or malformed
// payload yields an empty list, never an error; only storage failures are
// reported.
func (s *Store) Load() ([]string, error) {
	var ids []string
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketAgenda)).Get([]byte(keyBookmarks))
		if raw == nil {
			return nil
		}
		if jsonErr := json.Unmarshal(raw, &ids); jsonErr != nil {
			// Treat garbage as an empty set.
			ids = nil
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bookmarks: load: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Save writes the full bookmark identifier list, replacing the previous value.
func (s *Store) Save(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("bookmarks: encode: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketAgenda)).Put([]byte(keyBookmarks), raw)
	})
	if err != nil {
		return fmt.Errorf("bookmarks: save: %w", err)
	}
	return nil
}

// Close closes the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}
