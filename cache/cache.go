// Package cache provides the result cache the engine consults before
// re-chunking a document it has already seen (spec
// §4.13 expansion): an in-process LRU for the hot path, and optional
// Bolt- or Redis-backed tiers for persistence across restarts and across
// processes, adapted from the teacher's storage package.
package cache

import (
	"encoding/json"

	"github.com/cespare/xxhash"
)

// Key identifies one cached chunking result: the content hash combined
// with the configuration that produced it, so the same document chunked
// under two different configs never collides.
type Key string

// NewKey derives a cache key from document content and an arbitrary,
// JSON-marshalable configuration snapshot.
func NewKey(content string, cfg any) Key {
	cfgBytes, _ := json.Marshal(cfg)
	h := xxhash.New()
	_, _ = h.Write([]byte(content))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(cfgBytes)
	return Key(formatUint64(h.Sum64()))
}

func formatUint64(v uint64) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return string(buf)
}

// Entry is what gets stored against a Key: the serialized chunking
// result (as produced by mdchunk.Serialize over each chunk) plus the name
// of the strategy that produced it, which Chunk reports as StrategyUsed on
// a cache hit.
type Entry struct {
	Chunks       [][]byte `json:"chunks"`
	StrategyUsed string   `json:"strategy_used"`
}

// Store is the common capability every cache tier implements.
type Store interface {
	Get(key Key) (Entry, bool, error)
	Set(key Key, entry Entry) error
	Clear() error
}
