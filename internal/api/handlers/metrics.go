package handlers

import (
	"net/http"

	"msgvault/internal/pkg/metrics"
)

type MetricsHandler struct {
	exposition http.Handler
}

func NewMetricsHandler(m *metrics.Metrics) *MetricsHandler {
	return &MetricsHandler{exposition: m.Handler()}
}

// Export serves the Prometheus text exposition.
func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.exposition.ServeHTTP(w, r)
}
