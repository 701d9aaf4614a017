package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook outcome labels recorded per ingestion attempt.
const (
	OutcomeCreated          = "created"
	OutcomeDuplicate        = "duplicate"
	OutcomeInvalidSignature = "invalid_signature"
	OutcomeValidationError  = "validation_error"
	OutcomeStorageError     = "storage_error"
)

// Metrics holds the process-wide collectors. Construct once in main and
// inject; the registry is private so /metrics is the only way out.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	WebhookRequestsTotal *prometheus.CounterVec
	RequestLatency       prometheus.Summary

	registry *prometheus.Registry
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests by path and status",
			},
			[]string{"path", "status"},
		),
		WebhookRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_requests_total",
				Help: "Total webhook requests by result",
			},
			[]string{"result"},
		),
		RequestLatency: factory.NewSummary(
			prometheus.SummaryOpts{
				Name:       "request_latency_ms",
				Help:       "Request latency in milliseconds",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
				// Quantiles are meant to cover the whole process lifetime,
				// so the decay window is set far beyond any realistic run.
				MaxAge: 365 * 24 * time.Hour,
			},
		),
		registry: registry,
	}
}

// Handler serves the text exposition for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
