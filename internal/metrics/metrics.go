package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Dispatch
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	FlightsCommittedTotal  prometheus.Counter
	OrdersCommittedTotal   prometheus.Counter
	BookingConflictsTotal  prometheus.Counter
	ResourceConflictsTotal prometheus.Counter
	CancellationsTotal     prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dispatch_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dispatch_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dispatch_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		FlightsCommittedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_flights_committed_total",
				Help: "Total flights committed by admins",
			},
		),
		OrdersCommittedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_orders_committed_total",
				Help: "Total orders confirmed",
			},
		),
		BookingConflictsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_booking_conflicts_total",
				Help: "Total seat conflicts detected at order confirmation",
			},
		),
		ResourceConflictsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_resource_conflicts_total",
				Help: "Total plane/crew conflicts detected at flight commit",
			},
		),
		CancellationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_cancellations_total",
				Help: "Total cancellations by kind (order or flight)",
			},
			[]string{"kind"},
		),
	}
}
