// Package metrics exposes Prometheus instrumentation for the chunking
// pipeline: per-stage latency histograms and counters for strategy
// selection, cache hits, and validation failures (spec §4.13 expansion).
// Instrumentation is opt-in: a nil *Metrics (or one built with Enabled
// false) makes every recording method a no-op, so callers that don't
// want a Prometheus registry pay nothing for it.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors the engine records against.
type Metrics struct {
	Enabled bool

	stageDuration    *prometheus.HistogramVec
	strategyUsed     *prometheus.CounterVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	validationFailed prometheus.Counter
	warningsEmitted  *prometheus.CounterVec
}

// New registers and returns a Metrics bound to registry. Pass a fresh
// prometheus.NewRegistry() in tests to avoid colliding with the global
// default registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		Enabled: true,
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mdchunk",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		strategyUsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdchunk",
			Name:      "strategy_selected_total",
			Help:      "Count of chunking runs per strategy selected.",
		}, []string{"strategy"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mdchunk",
			Name:      "cache_hits_total",
			Help:      "Count of result-cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mdchunk",
			Name:      "cache_misses_total",
			Help:      "Count of result-cache misses.",
		}),
		validationFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mdchunk",
			Name:      "validation_failed_total",
			Help:      "Count of chunking runs whose completeness validation failed.",
		}),
		warningsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdchunk",
			Name:      "warnings_total",
			Help:      "Count of warnings emitted by code, e.g. unclosed_fence.",
		}, []string{"code"}),
	}

	registry.MustRegister(m.stageDuration, m.strategyUsed, m.cacheHits, m.cacheMisses, m.validationFailed, m.warningsEmitted)
	return m
}

// ObserveStage records how long a named pipeline stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil || !m.Enabled {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordStrategy increments the counter for the strategy the selector
// chose.
func (m *Metrics) RecordStrategy(name string) {
	if m == nil || !m.Enabled {
		return
	}
	m.strategyUsed.WithLabelValues(name).Inc()
}

// RecordCacheHit increments the cache-hit counter.
func (m *Metrics) RecordCacheHit() {
	if m == nil || !m.Enabled {
		return
	}
	m.cacheHits.Inc()
}

// RecordCacheMiss increments the cache-miss counter.
func (m *Metrics) RecordCacheMiss() {
	if m == nil || !m.Enabled {
		return
	}
	m.cacheMisses.Inc()
}

// RecordValidationFailure increments the validation-failure counter.
func (m *Metrics) RecordValidationFailure() {
	if m == nil || !m.Enabled {
		return
	}
	m.validationFailed.Inc()
}

// RecordWarnings increments the per-code warning counter for each
// warning a chunking run emitted.
func (m *Metrics) RecordWarnings(codes []string) {
	if m == nil || !m.Enabled {
		return
	}
	for _, c := range codes {
		m.warningsEmitted.WithLabelValues(c).Inc()
	}
}

// Snapshot is the point-in-time counter view attached to
// mdchunk.ChunkingResult.Counters (expansion §6.1) when a caller wants
// the numbers without scraping /metrics.
type Snapshot struct {
	StrategyUsed string
	CacheHit     bool
	WarningCount int
}
