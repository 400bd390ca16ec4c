// Package metrics provides Prometheus instrumentation for the classifier
// service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChecksTotal counts classifications by input kind and resulting tier.
	ChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyberguard",
			Name:      "checks_total",
			Help:      "Total classifications by input kind and risk tier.",
		},
		[]string{"kind", "tier"},
	)

	// CheckDuration observes classification latency by input kind.
	CheckDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cyberguard",
			Name:      "check_duration_seconds",
			Help:      "Classification duration in seconds.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"kind"},
	)

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyberguard",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route pattern, and status code.",
		},
		[]string{"method", "route", "status"},
	)

	// RuleReloadsTotal counts ruleset reload attempts by result.
	RuleReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyberguard",
			Name:      "rule_reloads_total",
			Help:      "Total ruleset reload attempts by result.",
		},
		[]string{"result"},
	)

	// EscalationsTotal counts verdicts flagged for operator review.
	EscalationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cyberguard",
		Name:      "escalations_total",
		Help:      "Total verdicts flagged for escalation.",
	})

	// ReportsTotal counts community scam reports by kind.
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyberguard",
			Name:      "reports_total",
			Help:      "Total community reports submitted by kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		ChecksTotal,
		CheckDuration,
		HTTPRequestsTotal,
		RuleReloadsTotal,
		EscalationsTotal,
		ReportsTotal,
	)
}

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
