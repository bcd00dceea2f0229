package mdchunk

import (
	"github.com/arjunmehta/mdchunk/cache"
	"github.com/arjunmehta/mdchunk/metrics"
	"github.com/arjunmehta/mdchunk/postprocess"
	"github.com/arjunmehta/mdchunk/strategy"
)

// options holds the resolved state of every Option passed to Chunk.
type options struct {
	strategyOverride string
	selectionMode    strategy.SelectionMode
	overlapMode      postprocess.OverlapMode
	strict           bool
	cacheStore       cache.Store
	metrics          *metrics.Metrics
}

func newOptions() options {
	return options{selectionMode: strategy.Strict, overlapMode: postprocess.MetadataOverlap}
}

// Option configures a single call to Chunk (spec §4.5, §4.10, §4.12
// expansion: selection mode, overlap mode, and strict validation are
// per-call choices rather than ChunkConfig fields, since they affect how
// the pipeline behaves rather than what the output should look like).
type Option func(*options)

// WithStrategy forces the engine to use the named strategy
// ("code_aware", "structural", "fallback"). If the forced strategy's
// CanHandle rejects the input, the engine falls back to normal selection
// and records a warning rather than failing (spec §4.5 "Override").
func WithStrategy(name string) Option {
	return func(o *options) { o.strategyOverride = name }
}

// WithWeightedSelection switches strategy selection from strict
// (highest-priority applicable strategy wins) to weighted (priority and
// quality score both contribute) mode (spec §4.5).
func WithWeightedSelection() Option {
	return func(o *options) { o.selectionMode = strategy.Weighted }
}

// WithInlineOverlap makes neighbor context appear directly in
// Chunk.Content instead of only in Chunk.Metadata (spec §4.10).
func WithInlineOverlap() Option {
	return func(o *options) { o.overlapMode = postprocess.InlineOverlap }
}

// WithStrict makes Chunk return a *DataLossError instead of a
// Warnings-only result when the completeness validator's coverage falls
// below ChunkConfig.Tolerance (spec §4.12, §7 DataLossError).
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithCache makes Chunk consult store before computing a result, and
// populate it after a fresh computation (expansion, §6.1). A hit skips
// the whole pipeline and returns a result with CacheHit set; Analysis and
// Validation are left zero-valued on a cache hit, since the document was
// already validated the first time it was chunked.
func WithCache(store cache.Store) Option {
	return func(o *options) { o.cacheStore = store }
}

// WithMetrics attaches Prometheus instrumentation to a call (expansion,
// §6.1).
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
