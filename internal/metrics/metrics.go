package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector bundles the application's prometheus metrics.
type Collector struct {
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	ChatRequestsTotal *prometheus.CounterVec
}

// NewCollector creates a Collector registered on reg. Tests pass a private
// registry to avoid duplicate registration across cases.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total upstream weather API requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream weather API request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Cache hits by cache name",
			},
			[]string{"cache"},
		),

		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Cache misses by cache name",
			},
			[]string{"cache"},
		),

		ChatRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_requests_total",
				Help:      "Chat completion requests by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveUpstream records one upstream call. A nil receiver is a no-op so
// components can run without metrics wired.
func (c *Collector) ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	c.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// CacheHit records a hit on the named cache.
func (c *Collector) CacheHit(cache string) {
	if c == nil {
		return
	}
	c.CacheHitsTotal.WithLabelValues(cache).Inc()
}

// CacheMiss records a miss on the named cache.
func (c *Collector) CacheMiss(cache string) {
	if c == nil {
		return
	}
	c.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// ChatRequest records one chat completion attempt.
func (c *Collector) ChatRequest(outcome string) {
	if c == nil {
		return
	}
	c.ChatRequestsTotal.WithLabelValues(outcome).Inc()
}
