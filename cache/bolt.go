package cache

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var resultsBucket = []byte("chunk_results")

// Bolt is the on-disk result cache tier, surviving process restarts
// (adapted from the teacher's storage.Bolt: same bbolt dependency, same
// single-bucket key/value layout, repurposed from storing RAG sources to
// storing serialized chunking results).
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens (creating if absent) a BoltDB-backed cache at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("cache: failed to open bolt database: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(resultsBucket)
		return err
	}); err != nil {
		return nil, fmt.Errorf("cache: failed to create results bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Get implements Store.
func (b *Bolt) Get(key Key) (Entry, bool, error) {
	var entry Entry
	found := false

	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(resultsBucket).Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &entry)
	})
	return entry, found, err
}

// Set implements Store.
func (b *Bolt) Set(key Key, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal entry: %w", err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(resultsBucket).Put([]byte(key), raw)
	})
}

// Clear implements Store.
func (b *Bolt) Clear() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(resultsBucket); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(resultsBucket)
		return err
	})
}

// Close releases the underlying database file.
func (b *Bolt) Close() error {
	return b.db.Close()
}
