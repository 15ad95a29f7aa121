package handlers

import (
	"net/http"

	"marketplace-dispatch/internal/logx"
)

// NotificationHandler serves notification read markers.
type NotificationHandler struct {
	logger logx.Logger
	uc     notificationUsecase
}

// NewNotificationHandler wires a notification usecase into HTTP handlers.
func NewNotificationHandler(logger logx.Logger, uc notificationUsecase) *NotificationHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &NotificationHandler{logger: logger, uc: uc}
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.uc.MarkRead(r.Context(), id); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /api/users/{userId}/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromURL(r, "userId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid user id")
		return
	}
	n, err := h.uc.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, markAllReadResponse{Updated: n})
}
