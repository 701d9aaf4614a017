package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apiContext "msgvault/internal/api/context"
	"msgvault/internal/pkg/metrics"
)

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// RequestID returns the correlation id assigned to this request, or ""
// outside the instrumented chain.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(apiContext.RequestID).(string)
	return id
}

// Instrument assigns a request id, emits one access-log line per request,
// and records the request counters and latency summary.
func Instrument(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		ctx := context.WithValue(r.Context(), apiContext.RequestID, requestID)

		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r.WithContext(ctx))

		latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

		m.HTTPRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(wrapped.status)).Inc()
		m.RequestLatency.Observe(latencyMs)

		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.status).
			Float64("latency_ms", latencyMs).
			Msg("request")
	})
}
