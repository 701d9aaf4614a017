package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"msgvault/internal/api/middleware"
	"msgvault/internal/engine/messages"
	"msgvault/internal/pkg/errors"
)

type StatsHandler struct {
	svc *messages.Service
}

func NewStatsHandler(svc *messages.Service) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Overview serves GET /stats.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.StatsOverview()
	if err != nil {
		log.Error().
			Str("request_id", middleware.RequestID(r.Context())).
			Err(err).
			Msg("stats query failed")
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "storage unavailable", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
