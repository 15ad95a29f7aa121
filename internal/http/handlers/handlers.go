package handlers

import (
	"context"
	"net/http"
	"time"

	"marketplace-dispatch/internal/logx"
)

const readyTimeout = 2 * time.Second

// Pinger reports whether a backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds the service-independent endpoints.
type Handlers struct {
	Logger logx.Logger
	db     Pinger
}

// New creates a Handlers instance with the given logger.
func New(logger logx.Logger) *Handlers {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Handlers{Logger: logger}
}

// WithReadiness makes Ready check db.
func (h *Handlers) WithReadiness(db Pinger) *Handlers {
	h.db = db
	return h
}

// Ping handles GET /ping and returns 200 with {"message":"pong"}.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead handles HEAD /healthcheck and returns 204 No Content.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Ready handles GET /readyz: 200 when the database answers, 503 otherwise.
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.Logger.Warn("readiness check failed", logx.Err(err))
			writeError(h.Logger, w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound returns a JSON 404 error for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusNotFound, "route not found")
}

// MethodNotAllowed returns a JSON 405 error.
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
}
