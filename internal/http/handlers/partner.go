package handlers

import (
	"net/http"
	"strings"

	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/logx"
)

// PartnerHandler serves delivery partner registration and approval.
type PartnerHandler struct {
	logger logx.Logger
	uc     partnerUsecase
}

// NewPartnerHandler wires a partner usecase into HTTP handlers.
func NewPartnerHandler(logger logx.Logger, uc partnerUsecase) *PartnerHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &PartnerHandler{logger: logger, uc: uc}
}

// Register handles POST /api/delivery-partners.
func (h *PartnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerPartnerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	p := req.toDomain()
	id, err := h.uc.Register(r.Context(), &p)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, idResponse{ID: id})
}

// GetByID handles GET /api/delivery-partners/{id}.
func (h *PartnerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	p, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toPartnerDTO(*p))
}

// List handles GET /api/delivery-partners?status=.
func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.PartnerStatus
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		ps := domain.PartnerStatus(s)
		if !ps.Valid() {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
			return
		}
		status = &ps
	}
	list, err := h.uc.List(r.Context(), status)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toPartnerDTOs(list))
}

// Approve handles POST /api/delivery-partners/{id}/approve.
func (h *PartnerHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req approvePartnerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	p, err := h.uc.Approve(r.Context(), id, req.AdminID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toPartnerDTO(*p))
}

// Reject handles POST /api/delivery-partners/{id}/reject.
func (h *PartnerHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req rejectPartnerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	p, err := h.uc.Reject(r.Context(), id, req.AdminID, strings.TrimSpace(req.Reason))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toPartnerDTO(*p))
}
