package handlers

import (
	"net/http"

	"marketplace-dispatch/internal/geo"
	"marketplace-dispatch/internal/logx"
)

// ZoneHandler serves delivery zone administration and fee quotes.
type ZoneHandler struct {
	logger logx.Logger
	uc     zoneUsecase
}

// NewZoneHandler wires a zone usecase into HTTP handlers.
func NewZoneHandler(logger logx.Logger, uc zoneUsecase) *ZoneHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &ZoneHandler{logger: logger, uc: uc}
}

// List handles GET /api/delivery-zones.
func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	zones, err := h.uc.List(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toZoneDTOs(zones))
}

// Get handles GET /api/delivery-zones/{id}.
func (h *ZoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	z, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toZoneDTO(*z))
}

// Quote handles GET /api/delivery-zones/quote. Either distance (km) or
// store_id with lat and lon must be given.
func (h *ZoneHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("distance") {
		distance, ok := floatQuery(r, "distance")
		if !ok {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid distance")
			return
		}
		q, err := h.uc.Quote(r.Context(), distance)
		if err != nil {
			writeServiceError(h.logger, w, r, err)
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, toQuoteDTO(q))
		return
	}

	storeID, err := optionalID(r, "store_id")
	if err != nil || storeID == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "distance or store_id is required")
		return
	}
	lat, okLat := floatQuery(r, "lat")
	lon, okLon := floatQuery(r, "lon")
	if !okLat || !okLon {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid coordinates")
		return
	}
	q, err := h.uc.QuoteRoute(r.Context(), *storeID, geo.Point{Lat: lat, Lon: lon})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toQuoteDTO(q))
}

// Create handles POST /api/delivery-zones.
func (h *ZoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req zoneRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	z := req.toDomain(0)
	id, err := h.uc.Create(r.Context(), &z)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, idResponse{ID: id})
}

// Update handles PUT /api/delivery-zones/{id}.
func (h *ZoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req zoneRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.uc.Update(r.Context(), req.toDomain(id)); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/delivery-zones/{id}.
func (h *ZoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
