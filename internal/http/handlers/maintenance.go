package handlers

import (
	"net/http"

	"marketplace-dispatch/internal/logx"
)

// MaintenanceHandler serves administrative data resets.
type MaintenanceHandler struct {
	logger logx.Logger
	uc     maintenanceUsecase
}

// NewMaintenanceHandler wires a maintenance usecase into HTTP handlers.
func NewMaintenanceHandler(logger logx.Logger, uc maintenanceUsecase) *MaintenanceHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &MaintenanceHandler{logger: logger, uc: uc}
}

// ResetStore handles POST /api/admin/stores/{id}/reset.
func (h *MaintenanceHandler) ResetStore(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := h.uc.ResetStoreData(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, resetResponse{Deleted: deleted})
}

// ResetAll handles POST /api/admin/reset.
func (h *MaintenanceHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.uc.ResetAllSystemData(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	h.logger.Warn("system data reset", logx.String("req_id", reqID(r)))
	writeJSON(h.logger, w, r, http.StatusOK, resetResponse{Deleted: deleted})
}
