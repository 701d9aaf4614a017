package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"msgvault/internal/api/middleware"
	"msgvault/internal/engine/messages"
	"msgvault/internal/pkg/errors"
)

type MessageHandler struct {
	svc *messages.Service
}

func NewMessageHandler(svc *messages.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// List serves GET /messages with pagination and optional filters.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := messages.DefaultLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errors.WriteError(w, http.StatusUnprocessableEntity, errors.ErrCodeInvalidInput, "limit must be an integer", nil)
			return
		}
		limit = n
	}

	offset := 0
	if raw := query.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errors.WriteError(w, http.StatusUnprocessableEntity, errors.ErrCodeInvalidInput, "offset must be an integer", nil)
			return
		}
		offset = n
	}

	resp, err := h.svc.List(messages.ListParams{
		Limit:  limit,
		Offset: offset,
		Filter: messages.Filter{
			From:     query.Get("from"),
			Since:    query.Get("since"),
			Contains: query.Get("q"),
		},
	})
	if err == messages.ErrInvalidParams {
		errors.WriteError(w, http.StatusUnprocessableEntity, errors.ErrCodeInvalidInput, "limit must be in [1,100] and offset >= 0", nil)
		return
	}
	if err != nil {
		log.Error().
			Str("request_id", middleware.RequestID(r.Context())).
			Err(err).
			Msg("message query failed")
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "storage unavailable", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
