package handlers

import (
	"net/http"

	"marketplace-dispatch/internal/logx"
)

// TrackingHandler serves delivery tracking reads.
type TrackingHandler struct {
	logger logx.Logger
	uc     trackingUsecase
}

// NewTrackingHandler wires a tracking usecase into HTTP handlers.
func NewTrackingHandler(logger logx.Logger, uc trackingUsecase) *TrackingHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &TrackingHandler{logger: logger, uc: uc}
}

// Delivery handles GET /api/deliveries/{id}/tracking.
func (h *TrackingHandler) Delivery(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	snap, err := h.uc.GetTrackingData(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toSnapshotDTO(*snap))
}

// Order handles GET /api/orders/{orderId}/tracking. Events come newest first.
func (h *TrackingHandler) Order(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	events, err := h.uc.GetOrderTracking(r.Context(), orderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toTrackingEventDTOs(events))
}
