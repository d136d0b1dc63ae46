package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ticketbridge/contact-sync/internal/handlers"
	"github.com/ticketbridge/contact-sync/internal/middleware"
)

// NewRouter constructs a ServeMux with the webhook API routes registered.
func NewRouter(h *handlers.WebhookHandler) http.Handler {
	mux := http.NewServeMux()

	// Inbound platform notifications
	mux.HandleFunc("/webhook", h.HandleWebhook)

	// Health endpoints
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
