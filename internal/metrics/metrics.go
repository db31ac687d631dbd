package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the consortium service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Governance Metrics
	GovernanceOpsTotal  *prometheus.CounterVec
	AirlinesRegistered  prometheus.Gauge
	PendingCandidacies  prometheus.Gauge
	OperationalStatus   prometheus.Gauge
	EventsPublishErrors prometheus.Counter
}

// NewMetricsRegistry registers every metric with reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consortium_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "consortium_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "consortium_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consortium_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consortium_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Governance Metrics
		GovernanceOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consortium_governance_operations_total",
				Help: "Governance calls by operation and result code",
			},
			[]string{"operation", "code"},
		),
		AirlinesRegistered: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "consortium_airlines_registered",
				Help: "Current number of registered airlines",
			},
		),
		PendingCandidacies: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "consortium_candidacies_pending",
				Help: "Candidates holding at least one vote",
			},
		),
		OperationalStatus: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "consortium_operational",
				Help: "1 when governance mutations are enabled, 0 when paused",
			},
		),
		EventsPublishErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "consortium_event_publish_errors_total",
				Help: "Governance events that could not be published to the event sink",
			},
		),
	}
}
