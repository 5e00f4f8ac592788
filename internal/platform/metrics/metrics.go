// Package metrics holds the Prometheus collectors for upstream calls and the response cache
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors; a nil *Metrics is a valid no-op
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	Fallthroughs     *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
}

// New builds the collectors and registers them on reg
// a nil reg leaves them unregistered, which is what tests want
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "engagegov_upstream_requests_total",
			Help: "Upstream HTTP attempts by source and outcome",
		}, []string{"source", "outcome"}),
		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "engagegov_upstream_request_duration_seconds",
			Help:    "Upstream HTTP attempt latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		Fallthroughs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "engagegov_candidate_fallthrough_total",
			Help: "Candidate endpoints that failed and fell through to the next one",
		}, []string{"source"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "engagegov_cache_lookups_total",
			Help: "Response cache lookups by source and result",
		}, []string{"source", "result"}),
	}
}

// ObserveUpstream records one attempt
func (m *Metrics) ObserveUpstream(source, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(source, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(source).Observe(d.Seconds())
}

// IncFallthrough records a failed candidate
func (m *Metrics) IncFallthrough(source string) {
	if m == nil {
		return
	}
	m.Fallthroughs.WithLabelValues(source).Inc()
}

// IncCache records a cache hit, miss or error
func (m *Metrics) IncCache(source, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(source, result).Inc()
}

// Handler exposes g in the Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
