package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"msgvault/internal/api/handlers"
	"msgvault/internal/api/middleware"
	"msgvault/internal/pkg/metrics"
)

type Dependencies struct {
	WebhookHandler *handlers.WebhookHandler
	MessageHandler *handlers.MessageHandler
	StatsHandler   *handlers.StatsHandler
	HealthHandler  *handlers.HealthHandler
	MetricsHandler *handlers.MetricsHandler
	Metrics        *metrics.Metrics
}

// NewRouter builds the route table and wraps it with the request-id,
// access-log, and metrics middleware.
func NewRouter(deps *Dependencies) http.Handler {
	router := httprouter.New()

	router.POST("/webhook", wrap(deps.WebhookHandler.Receive))
	router.GET("/messages", wrap(deps.MessageHandler.List))
	router.GET("/stats", wrap(deps.StatsHandler.Overview))
	router.GET("/health/live", wrap(deps.HealthHandler.Live))
	router.GET("/health/ready", wrap(deps.HealthHandler.Ready))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))

	return middleware.Instrument(deps.Metrics, router)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		handler(w, r)
	}
}
