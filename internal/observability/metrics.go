// Package observability provides Prometheus metrics for the planning service.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Simplici0/bizcal/internal/planner"
)

const defaultNamespace = "bizcal"

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	registry *prometheus.Registry

	PlansComputed    *prometheus.CounterVec
	ConditionsRaised *prometheus.CounterVec
	InvalidRequests  *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PlansComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "planner",
			Name:      "plans_computed_total",
			Help:      "Total number of plans computed by projection mode",
		}, []string{"mode"}),
		ConditionsRaised: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "planner",
			Name:      "conditions_raised_total",
			Help:      "Total number of plan conditions raised by kind",
		}, []string{"condition"}),
		InvalidRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "invalid_requests_total",
			Help:      "Total number of rejected plan requests by reason",
		}, []string{"reason"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// ObservePlan records one computed plan and the conditions it raised.
func (m *Metrics) ObservePlan(plan planner.Plan) {
	m.PlansComputed.WithLabelValues(string(plan.Mode)).Inc()
	for _, c := range plan.Conditions {
		m.ConditionsRaised.WithLabelValues(string(c)).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
