package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gavel",
			Name:      "query_duration_seconds",
			Help:      "Corpus query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"query"},
	)

	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gavel",
			Name:      "cache_hits_total",
			Help:      "Total number of response cache hits",
		},
	)

	cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gavel",
			Name:      "cache_misses_total",
			Help:      "Total number of response cache misses",
		},
	)
)

func init() {
	prometheus.MustRegister(queryDuration)
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
}

// ObserveQuery records the elapsed time of a named corpus query.
// Intended to be deferred at the top of repository methods:
//
//	defer metrics.ObserveQuery("sections_list", time.Now())
func ObserveQuery(name string, start time.Time) {
	queryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

// CacheHit increments the response cache hit counter.
func CacheHit() { cacheHits.Inc() }

// CacheMiss increments the response cache miss counter.
func CacheMiss() { cacheMisses.Inc() }
