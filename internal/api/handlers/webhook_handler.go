package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"msgvault/internal/api/middleware"
	"msgvault/internal/engine/messages"
	"msgvault/internal/engine/webhooks"
	"msgvault/internal/pkg/errors"
	"msgvault/internal/pkg/metrics"
)

type WebhookHandler struct {
	secret  string
	repo    *messages.Repository
	metrics *metrics.Metrics
}

func NewWebhookHandler(secret string, repo *messages.Repository, m *metrics.Metrics) *WebhookHandler {
	return &WebhookHandler{secret: secret, repo: repo, metrics: m}
}

// Receive ingests one signed webhook event: verify signature over the raw
// bytes, validate the payload, insert, respond. Duplicates get the same
// success response as creates; only the recorded outcome differs.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "failed to read request body", nil)
		return
	}

	// The signature covers the exact bytes received, before any parsing.
	signature := r.Header.Get("X-Signature")
	if !webhooks.Verify(h.secret, body, signature) {
		log.Error().
			Str("request_id", requestID).
			Str("result", metrics.OutcomeInvalidSignature).
			Msg("invalid signature")
		h.metrics.WebhookRequestsTotal.WithLabelValues(metrics.OutcomeInvalidSignature).Inc()
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "invalid signature", nil)
		return
	}

	msg, verr := messages.ParsePayload(body)
	if verr != nil {
		log.Error().
			Str("request_id", requestID).
			Str("result", metrics.OutcomeValidationError).
			Str("detail", verr.Error()).
			Msg("validation error")
		h.metrics.WebhookRequestsTotal.WithLabelValues(metrics.OutcomeValidationError).Inc()
		errors.WriteError(w, http.StatusUnprocessableEntity, errors.ErrCodeInvalidInput, "validation failed", verr.Fields)
		return
	}

	outcome, err := h.repo.Insert(msg)
	if err != nil {
		log.Error().
			Str("request_id", requestID).
			Str("result", metrics.OutcomeStorageError).
			Err(err).
			Msg("insert failed")
		h.metrics.WebhookRequestsTotal.WithLabelValues(metrics.OutcomeStorageError).Inc()
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "storage unavailable", nil)
		return
	}

	result := metrics.OutcomeCreated
	if outcome == messages.OutcomeDuplicate {
		result = metrics.OutcomeDuplicate
	}

	log.Info().
		Str("request_id", requestID).
		Str("message_id", msg.MessageID).
		Bool("dup", outcome == messages.OutcomeDuplicate).
		Str("result", result).
		Msg("webhook processed")
	h.metrics.WebhookRequestsTotal.WithLabelValues(result).Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
