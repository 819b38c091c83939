// Package metrics exposes provider and aggregation counters in the
// Prometheus text format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/provider"
	"insurance_quotes/internal/usecase/interfaces"
)

const namespace = "quotes"

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	attempts        *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	aggregations    *prometheus.CounterVec
	enrichmentFails *prometheus.CounterVec
}

var (
	_ provider.Recorder              = (*Metrics)(nil)
	_ interfaces.IAggregationMetrics = (*Metrics)(nil)
)

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_attempts_total",
			Help:      "Provider attempts by outcome.",
		}, []string{"provider", "outcome"}),
		attemptDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_attempt_duration_seconds",
			Help:      "Duration of single provider attempts.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 10, 20, 30, 60},
		}, []string{"provider"}),
		aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregations_total",
			Help:      "Aggregation requests by terminal status.",
		}, []string{"status"}),
		enrichmentFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_failures_total",
			Help:      "Failed enrichment passes by provider.",
		}, []string{"provider"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.attempts,
		m.attemptDuration,
		m.aggregations,
		m.enrichmentFails,
	)
	return m
}

func (m *Metrics) AttemptFinished(providerCode string, _ int, err error, elapsed time.Duration) {
	m.attempts.WithLabelValues(providerCode, attemptOutcome(err)).Inc()
	m.attemptDuration.WithLabelValues(providerCode).Observe(elapsed.Seconds())
}

func (m *Metrics) AggregationFinished(status entities.AggregationStatus) {
	m.aggregations.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) EnrichmentFailed(providerCode string) {
	m.enrichmentFails.WithLabelValues(providerCode).Inc()
}

// Handler serves the registry for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func attemptOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case !provider.IsRetryable(err):
		return "invalid"
	default:
		return "failure"
	}
}
