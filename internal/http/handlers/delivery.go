package handlers

import (
	"errors"
	"net/http"
	"strings"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/logx"
)

// DeliveryHandler serves the delivery workflow: creation, the partner-facing
// notification feed, claims and status progression.
type DeliveryHandler struct {
	logger logx.Logger
	uc     dispatchUsecase
}

// NewDeliveryHandler wires a dispatch usecase into HTTP handlers.
func NewDeliveryHandler(logger logx.Logger, uc dispatchUsecase) *DeliveryHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DeliveryHandler{logger: logger, uc: uc}
}

// Create handles POST /api/orders/{orderId}/delivery. It answers 201 for a new
// delivery and 200 when the order already had a live one.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	d, created, err := h.uc.CreateForOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(h.logger, w, r, status, createDeliveryResponse{Delivery: toDeliveryDTO(*d), Created: created})
}

// Cancel handles POST /api/orders/{orderId}/delivery/cancel.
func (h *DeliveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	var req cancelRequest
	if r.ContentLength != 0 {
		if ok := decodeJSON(h.logger, w, r, &req); !ok {
			return
		}
	}

	d, err := h.uc.CancelForOrder(r.Context(), orderID, strings.TrimSpace(req.Reason))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toDeliveryDTO(*d))
}

// ListByOrder handles GET /api/orders/{orderId}/deliveries.
func (h *DeliveryHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	list, err := h.uc.ListByOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toDeliveryDTOs(list))
}

// ListByPartner handles GET /api/delivery-partners/{id}/deliveries.
func (h *DeliveryHandler) ListByPartner(w http.ResponseWriter, r *http.Request) {
	partnerID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	list, err := h.uc.ListByPartner(r.Context(), partnerID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toDeliveryDTOs(list))
}

// Get handles GET /api/deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	d, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toDeliveryDTO(*d))
}

// Active handles GET /api/deliveries/active?store_id=|partner_id=.
func (h *DeliveryHandler) Active(w http.ResponseWriter, r *http.Request) {
	storeID, err := optionalID(r, "store_id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	partnerID, err := optionalID(r, "partner_id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	if storeID != nil && partnerID != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "store_id and partner_id are mutually exclusive")
		return
	}

	list, err := h.uc.ListActive(r.Context(), domain.ActiveFilter{StoreID: storeID, PartnerID: partnerID})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toDeliveryDTOs(list))
}

// Notifications handles GET /api/delivery-notifications. The caller is named by
// the X-Partner-ID header.
func (h *DeliveryHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := partnerFromHeader(r)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "missing or invalid "+PartnerHeader)
		return
	}
	list, err := h.uc.ListPending(r.Context(), partnerID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toPendingDTOs(list))
}

// Accept handles POST /api/delivery-notifications/{orderId}/accept.
func (h *DeliveryHandler) Accept(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	var req partnerDecisionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.uc.AcceptForOrder(r.Context(), orderID, req.DeliveryPartnerID)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			writeError(h.logger, w, r, http.StatusConflict, "delivery already taken")
			return
		}
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toDeliveryDTO(*d))
}

// Reject handles POST /api/delivery-notifications/{orderId}/reject.
func (h *DeliveryHandler) Reject(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	var req partnerDecisionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.uc.RejectForOrder(r.Context(), orderID, req.DeliveryPartnerID); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, messageResponse{Message: "delivery rejected"})
}

// Offer handles POST /api/deliveries/{id}/offer.
func (h *DeliveryHandler) Offer(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req partnerDecisionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.uc.Offer(r.Context(), id, req.DeliveryPartnerID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toDeliveryDTO(*d))
}

// Location handles POST /api/deliveries/{id}/location.
func (h *DeliveryHandler) Location(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req locationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.uc.UpdateLocation(r.Context(), id, req.PartnerID, *req.Latitude, *req.Longitude); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status handles POST /api/deliveries/{id}/status. An X-Partner-ID header makes
// the change on behalf of that partner, who must hold the delivery.
func (h *DeliveryHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	to := domain.DeliveryStatus(strings.TrimSpace(req.Status))
	if !to.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
		return
	}

	var actor *int64
	if r.Header.Get(PartnerHeader) != "" {
		pid, ok := partnerFromHeader(r)
		if !ok {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid "+PartnerHeader)
			return
		}
		actor = &pid
	}

	d, err := h.uc.UpdateStatus(r.Context(), domain.StatusChange{
		DeliveryID:  id,
		To:          to,
		Description: strings.TrimSpace(req.Description),
	}, actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toDeliveryDTO(*d))
}
