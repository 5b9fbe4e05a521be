// Package monitoring provides Prometheus metrics collection
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/plan"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger *zap.Logger

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Planning metrics
	plansProposedTotal    prometheus.Counter
	planCacheHitsTotal    prometheus.Counter
	plansInvalidatedTotal prometheus.Counter
	plansCommittedTotal   *prometheus.CounterVec
	planningRejectedTotal prometheus.Counter
	planningDuration      prometheus.Histogram
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	return &MetricsCollector{
		logger: logger,

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		plansProposedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "plans_proposed_total",
				Help: "Total number of dinner plans proposed",
			},
		),
		planCacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "plan_cache_hits_total",
				Help: "Total number of planning requests served from an existing proposal",
			},
		),
		plansInvalidatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "plans_invalidated_total",
				Help: "Total number of proposed plans invalidated by inventory changes",
			},
		),
		plansCommittedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plans_committed_total",
				Help: "Total number of plans committed, by outcome",
			},
			[]string{"outcome"},
		),
		planningRejectedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "planning_rejected_total",
				Help: "Total number of planning runs that found no eligible recipe",
			},
		),
		planningDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "planning_duration_seconds",
				Help:    "Duration of planning engine runs in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
		),
	}
}

// PlanProposed records a freshly proposed plan
func (m *MetricsCollector) PlanProposed() {
	m.plansProposedTotal.Inc()
}

// PlanCacheHit records a planning request answered with an existing proposal
func (m *MetricsCollector) PlanCacheHit() {
	m.planCacheHitsTotal.Inc()
}

// PlansInvalidated records proposals invalidated by an inventory change
func (m *MetricsCollector) PlansInvalidated(count int) {
	m.plansInvalidatedTotal.Add(float64(count))
}

// PlanCommitted records a plan commit with its outcome
func (m *MetricsCollector) PlanCommitted(outcome plan.Outcome) {
	m.plansCommittedTotal.WithLabelValues(string(outcome)).Inc()
}

// PlanningRejected records a planning run with no eligible recipe
func (m *MetricsCollector) PlanningRejected() {
	m.planningRejectedTotal.Inc()
}

// ObservePlanningDuration records how long a planning engine run took
func (m *MetricsCollector) ObservePlanningDuration(d time.Duration) {
	m.planningDuration.Observe(d.Seconds())
}

// RecordHTTPRequest records metrics for an HTTP request
func (m *MetricsCollector) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Handler returns the Prometheus scrape endpoint handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}
