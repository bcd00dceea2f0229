package mdchunk

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arjunmehta/mdchunk/cache"
	"github.com/arjunmehta/mdchunk/metrics"
)

// Chunk splits a Markdown document into retrieval-sized pieces (spec
// §4.13, §6.1). An empty or whitespace-only input is not an error: it
// yields a successful, empty-chunk result carrying ErrEmptyInput's
// message as a warning. Invalid UTF-8 and an inconsistent cfg are fatal
// and returned as *EncodingError / *ConfigError.
func Chunk(text string, cfg ChunkConfig, opts ...Option) (ChunkingResult, error) {
	start := time.Now()

	if off := firstInvalidUTF8(text); off >= 0 {
		return ChunkingResult{}, &EncodingError{ByteOffset: off}
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return ChunkingResult{}, err
	}

	o := newOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(text) == "" {
		return ChunkingResult{
			Success:          true,
			Warnings:         []string{ErrEmptyInput.Error()},
			ProcessingTimeMS: elapsedMS(start),
			Validation:       ValidationResult{IsValid: true, CharCoverage: 1},
		}, nil
	}

	var cacheKey cache.Key
	if o.cacheStore != nil {
		cacheKey = cache.NewKey(text, cfg)
		if entry, hit, err := o.cacheStore.Get(cacheKey); err == nil && hit {
			o.metrics.RecordCacheHit()
			chunks, derr := decodeCachedChunks(entry)
			if derr == nil {
				hit := ChunkingResult{
					Chunks:           chunks,
					StrategyUsed:     entry.StrategyUsed,
					Success:          true,
					CacheHit:         true,
					ProcessingTimeMS: elapsedMS(start),
				}
				if o.metrics != nil && o.metrics.Enabled {
					hit.Counters = &metrics.Snapshot{StrategyUsed: entry.StrategyUsed, CacheHit: true}
				}
				return hit, nil
			}
		}
		o.metrics.RecordCacheMiss()
	}

	result, err := runChunking(text, cfg, o)
	result.ProcessingTimeMS = elapsedMS(start)

	o.metrics.RecordStrategy(result.StrategyUsed)
	o.metrics.RecordWarnings(result.Warnings)
	if !result.Validation.IsValid {
		o.metrics.RecordValidationFailure()
	}
	if o.metrics != nil && o.metrics.Enabled {
		result.Counters = &metrics.Snapshot{StrategyUsed: result.StrategyUsed, WarningCount: len(result.Warnings)}
	}

	if err == nil && o.cacheStore != nil {
		if entry, encErr := encodeCachedChunks(result.Chunks, result.StrategyUsed); encErr == nil {
			_ = o.cacheStore.Set(cacheKey, entry)
		}
	}

	return result, err
}

func encodeCachedChunks(chunks []Chunk, strategyUsed string) (cache.Entry, error) {
	raw := make([][]byte, len(chunks))
	for i, c := range chunks {
		b, err := Serialize(c)
		if err != nil {
			return cache.Entry{}, err
		}
		raw[i] = b
	}
	return cache.Entry{Chunks: raw, StrategyUsed: strategyUsed}, nil
}

func decodeCachedChunks(entry cache.Entry) ([]Chunk, error) {
	chunks := make([]Chunk, len(entry.Chunks))
	for i, raw := range entry.Chunks {
		c, err := Deserialize(raw)
		if err != nil {
			return nil, err
		}
		chunks[i] = c
	}
	return chunks, nil
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func firstInvalidUTF8(s string) int {
	if utf8.ValidString(s) {
		return -1
	}
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return 0
}
