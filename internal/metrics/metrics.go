// Package metrics exposes the pipeline's Prometheus instrumentation: queue
// depth gauges sampled at enqueue/dequeue (SPEC_FULL.md's C8 addition) and
// per-provider word counters mirroring the dispatcher's own accounting
// (C9's addition), grounded on the example pack's promauto package-level
// metric variables.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nicksukie/livesub/internal/core"
)

var (
	QueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "livesub_queue_depth",
		Help: "Current occupancy of an inter-stage pipeline queue.",
	}, []string{"queue"})

	// ProviderWordsTotal mirrors the dispatcher's running per-provider word
	// count. It is a gauge rather than a counter because the dispatcher
	// already owns the monotonic total (internal/dispatch's providerWords
	// map); re-deriving per-call deltas here would duplicate bookkeeping
	// the dispatcher already does correctly.
	ProviderWordsTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "livesub_provider_words_total",
		Help: "Cumulative words translated by each provider this session.",
	}, []string{"provider"})

	ProviderCallsTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "livesub_provider_calls_total",
		Help: "Cumulative translate calls made to each provider this session.",
	}, []string{"provider"})

	GateTripsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livesub_gate_trips_total",
		Help: "Recognition results rejected by the obstruction gate, by rule.",
	}, []string{"rule"})

	TranslationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "livesub_translation_duration_seconds",
		Help:    "Time spent in a single dispatcher Translate call.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	}, []string{"provider"})
)

// SyncProviderStats overwrites the provider gauges with the dispatcher's
// current running totals, called from the same site the dispatcher already
// updates its own counters (the translation worker, after each commit).
func SyncProviderStats(stats []core.ProviderStats) {
	for _, s := range stats {
		ProviderWordsTotal.WithLabelValues(s.Provider).Set(float64(s.WordCount))
		ProviderCallsTotal.WithLabelValues(s.Provider).Set(float64(s.CallCount))
	}
}
