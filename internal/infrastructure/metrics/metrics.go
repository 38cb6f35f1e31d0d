package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Classifications counts decisions by outcome and by the engine that
	// actually produced them (a model call that fell back counts as heuristic).
	Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parsec",
		Subsystem: "classifier",
		Name:      "classifications_total",
		Help:      "Classification decisions by outcome and engine.",
	}, []string{"classification", "engine"})

	// ModelFailures counts per-call model invocation failures that degraded
	// to the heuristic path.
	ModelFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "parsec",
		Subsystem: "classifier",
		Name:      "model_failures_total",
		Help:      "Zero-shot model invocations that fell back to heuristics.",
	})

	// ModelLatency observes successful zero-shot model invocation latency.
	ModelLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "parsec",
		Subsystem: "classifier",
		Name:      "model_latency_seconds",
		Help:      "Zero-shot model invocation latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// CacheHits counts classifications served from the result cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "parsec",
		Subsystem: "classifier",
		Name:      "cache_hits_total",
		Help:      "Classification results served from the cache.",
	})
)
