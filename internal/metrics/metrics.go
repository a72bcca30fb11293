// Package metrics exposes prometheus counters for the balance engine.
// The registry is returned to the embedding process; this library never
// serves a /metrics endpoint itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's counters on a dedicated registry.
type Metrics struct {
	Registry *prometheus.Registry

	// Computations counts full pipeline runs (cache misses included).
	Computations prometheus.Counter

	// CacheHits and CacheMisses count report cache lookups.
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Invalidations counts explicit cache invalidations.
	Invalidations prometheus.Counter

	// DegradedFallbacks counts reports served from un-netted balances
	// because the settlement overlay rejected its input.
	DegradedFallbacks prometheus.Counter
}

// New creates a Metrics with all counters registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Computations: factory.NewCounter(prometheus.CounterOpts{
			Name: "settler_report_computations_total",
			Help: "Number of full balance pipeline runs.",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "settler_report_cache_hits_total",
			Help: "Number of report cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "settler_report_cache_misses_total",
			Help: "Number of report cache misses.",
		}),
		Invalidations: factory.NewCounter(prometheus.CounterOpts{
			Name: "settler_report_cache_invalidations_total",
			Help: "Number of explicit report cache invalidations.",
		}),
		DegradedFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "settler_report_degraded_fallbacks_total",
			Help: "Number of reports served from un-netted balances after an overlay failure.",
		}),
	}
}
