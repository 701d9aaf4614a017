package handlers

import (
	"encoding/json"
	"net/http"

	"msgvault/internal/engine/messages"
)

type HealthHandler struct {
	secret string
	repo   *messages.Repository
}

func NewHealthHandler(secret string, repo *messages.Repository) *HealthHandler {
	return &HealthHandler{secret: secret, repo: repo}
}

// Live always reports ok while the process runs.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Ready reports ready only when the secret is configured and the store is
// reachable with the schema present.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.secret == "" {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "not ready",
			"reason": "WEBHOOK_SECRET not set",
		})
		return
	}

	if !h.repo.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "not ready",
			"reason": "database not ready",
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}
