// Package prometheus registers and exposes the application metrics.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default buckets.
var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultDBDurationBuckets   = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// Metrics holds the application metric vectors.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Evaluation layer
	EvaluationsTotal   *prometheus.CounterVec
	LaudosCreatedTotal *prometheus.CounterVec
	LaudoStatusChanges prometheus.Counter

	// Infrastructure
	DBQueryDuration      *prometheus.HistogramVec
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	EventPublishFailures prometheus.Counter
}

// NewMetrics registers all metric vectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "labqc_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status_code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "labqc_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: DefaultHTTPDurationBuckets,
		}, []string{"method", "path"}),
		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "labqc_evaluations_total",
			Help: "Test evaluations by resulting status",
		}, []string{"status"}),
		LaudosCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "labqc_laudos_created_total",
			Help: "Laudos created by rollup status",
		}, []string{"status"}),
		LaudoStatusChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "labqc_laudo_status_changes_total",
			Help: "Laudo rollup status transitions after creation",
		}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "labqc_db_query_duration_seconds",
			Help:    "Database query duration",
			Buckets: DefaultDBDurationBuckets,
		}, []string{"operation"}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "labqc_cache_hits_total",
			Help: "Rule cache hits",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "labqc_cache_misses_total",
			Help: "Rule cache misses",
		}),
		EventPublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "labqc_event_publish_failures_total",
			Help: "Failed event bus publishes",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.EvaluationsTotal,
		m.LaudosCreatedTotal,
		m.LaudoStatusChanges,
		m.DBQueryDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.EventPublishFailures,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (for tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
