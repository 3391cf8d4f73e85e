package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "realestate"

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthFailureCounter  prometheus.Counter

	// Catalog write operations by entity and operation
	OperationsCounter *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AuthAttemptsCounter: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Total number of token requests",
		}),
		AuthSuccessCounter: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_success_total",
			Help:      "Total number of tokens issued",
		}),
		AuthFailureCounter: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Total number of rejected credentials",
		}),
		OperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of successful write operations",
			},
			[]string{"entity", "operation"},
		),
	}
}

// RecordAuthAttempt counts a token request and its outcome
func (m *Metrics) RecordAuthAttempt(success bool) {
	if m == nil {
		return
	}
	m.AuthAttemptsCounter.Inc()
	if success {
		m.AuthSuccessCounter.Inc()
	} else {
		m.AuthFailureCounter.Inc()
	}
}

// RecordOperation counts a successful write, e.g. ("property", "create")
func (m *Metrics) RecordOperation(entity, operation string) {
	if m == nil {
		return
	}
	m.OperationsCounter.WithLabelValues(entity, operation).Inc()
}
