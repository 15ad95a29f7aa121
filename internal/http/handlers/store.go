package handlers

import (
	"net/http"
	"strings"

	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/logx"
)

// StoreHandler serves store lookups.
type StoreHandler struct {
	logger logx.Logger
	uc     storeUsecase
}

// NewStoreHandler wires a store usecase into HTTP handlers.
func NewStoreHandler(logger logx.Logger, uc storeUsecase) *StoreHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &StoreHandler{logger: logger, uc: uc}
}

// Nearby handles GET /api/stores/nearby?lat&lon&type.
func (h *StoreHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, okLat := floatQuery(r, "lat")
	lon, okLon := floatQuery(r, "lon")
	if !okLat || !okLon {
		writeError(h.logger, w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}
	storeType := domain.StoreType(strings.TrimSpace(r.URL.Query().Get("type")))

	list, err := h.uc.Nearby(r.Context(), lat, lon, storeType)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toStoreDistanceDTOs(list))
}
