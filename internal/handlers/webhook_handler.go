package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ticketbridge/contact-sync/internal/logging"
	"github.com/ticketbridge/contact-sync/internal/service"
)

// EventProcessor is the service contract the handler depends on.
type EventProcessor interface {
	Process(ctx context.Context, body []byte) error
}

type WebhookHandler struct {
	service     EventProcessor
	maxBodySize int64
}

func NewWebhookHandler(svc EventProcessor, maxBodySize int64) *WebhookHandler {
	if maxBodySize <= 0 {
		maxBodySize = 1 << 20
	}
	return &WebhookHandler{
		service:     svc,
		maxBodySize: maxBodySize,
	}
}

// SyncResponse is the boundary response. It never exposes internal payload
// details; full diagnostic context goes to the operational log only.
type SyncResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// HandleWebhook accepts one event notification per POST. GET answers a
// liveness probe so the platform's endpoint check passes.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.sendJSON(w, http.StatusOK, SyncResponse{Success: true, Message: "webhook operational"})
		return
	case http.MethodPost:
	default:
		h.sendJSON(w, http.StatusMethodNotAllowed, SyncResponse{Success: false, Error: "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.sendJSON(w, http.StatusBadRequest, SyncResponse{Success: false, Error: "invalid payload"})
		return
	}
	defer r.Body.Close()

	if len(body) == 0 {
		h.sendJSON(w, http.StatusBadRequest, SyncResponse{Success: false, Error: "invalid payload"})
		return
	}

	if err := h.service.Process(r.Context(), body); err != nil {
		if errors.Is(err, service.ErrMalformedEvent) {
			slog.WarnContext(r.Context(), "rejecting malformed event",
				logging.Error(err),
				logging.Status(http.StatusBadRequest),
			)
			h.sendJSON(w, http.StatusBadRequest, SyncResponse{Success: false, Error: "invalid payload"})
			return
		}
		slog.ErrorContext(r.Context(), "event processing failed",
			logging.Error(err),
			logging.Status(http.StatusInternalServerError),
		)
		h.sendJSON(w, http.StatusInternalServerError, SyncResponse{Success: false, Error: "internal error"})
		return
	}

	h.sendJSON(w, http.StatusOK, SyncResponse{Success: true})
}

// Health returns service health status.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready reports readiness to take traffic.
func (h *WebhookHandler) Ready(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *WebhookHandler) sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
