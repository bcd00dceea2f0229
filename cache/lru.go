package cache

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNotFound is a sentinel for an absent entry. No Store in this package
// returns it: their Get methods report a miss through the bool result with
// a nil error.
var ErrNotFound = errors.New("cache: entry not found")

// LRU is an in-process, size-bounded result cache (spec §4.13
// expansion). It is always the first tier consulted.
type LRU struct {
	cache *lru.Cache[Key, Entry]
}

// NewLRU creates an LRU cache holding up to size entries.
func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		size = 256
	}
	c, err := lru.New[Key, Entry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: c}, nil
}

// Get implements Store.
func (l *LRU) Get(key Key) (Entry, bool, error) {
	e, ok := l.cache.Get(key)
	return e, ok, nil
}

// Set implements Store.
func (l *LRU) Set(key Key, entry Entry) error {
	l.cache.Add(key, entry)
	return nil
}

// Clear implements Store.
func (l *LRU) Clear() error {
	l.cache.Purge()
	return nil
}
