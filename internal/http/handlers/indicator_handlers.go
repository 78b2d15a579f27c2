package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/service"
)

// IndicatorHandler serves the indicator registry endpoints.
type IndicatorHandler struct {
	service *service.IndicatorService
	logger  *zap.Logger
}

// NewIndicatorHandler returns handler.
func NewIndicatorHandler(service *service.IndicatorService, logger *zap.Logger) *IndicatorHandler {
	return &IndicatorHandler{service: service, logger: logger}
}

// Create handles POST /monitor-indices.
func (h *IndicatorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateIndicatorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ind, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ind)
}

// Get handles GET /monitor-indices/{id}.
func (h *IndicatorHandler) Get(w http.ResponseWriter, r *http.Request) {
	ind, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ind)
}

// List handles GET /monitor-indices.
func (h *IndicatorHandler) List(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.service.List(r.Context(), queryInt(r, "skip", 0), queryInt(r, "limit", 100))
	if err != nil {
		h.logger.Error("failed to list indicators", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if indicators == nil {
		indicators = []models.Indicator{}
	}
	writeJSON(w, http.StatusOK, indicators)
}

// Update handles PATCH /monitor-indices/{id}.
func (h *IndicatorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.IndicatorUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ind, err := h.service.Update(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ind)
}

// Delete handles DELETE /monitor-indices/{id}.
func (h *IndicatorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
