package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/service"
)

// ReadingHandler serves reading ingestion and the audit workflow.
type ReadingHandler struct {
	service *service.ReadingService
	logger  *zap.Logger
}

// NewReadingHandler returns handler.
func NewReadingHandler(service *service.ReadingService, logger *zap.Logger) *ReadingHandler {
	return &ReadingHandler{service: service, logger: logger}
}

// Create handles POST /environment-data.
func (h *ReadingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateReadingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	reading, err := h.service.Create(r.Context(), input, time.Now().UTC())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reading)
}

// Get handles GET /environment-data/{id}.
func (h *ReadingHandler) Get(w http.ResponseWriter, r *http.Request) {
	reading, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

// ListByDevice handles GET /environment-data/device/{device_id}.
func (h *ReadingHandler) ListByDevice(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathInt64(r, "device_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid device id")
		return
	}
	start, err := queryTime(r, "start_time")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_time")
		return
	}
	end, err := queryTime(r, "end_time")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_time")
		return
	}
	readings, err := h.service.ListByDevice(r.Context(), deviceID, start, end)
	if err != nil {
		h.logger.Error("failed to list readings", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if readings == nil {
		readings = []models.Reading{}
	}
	writeJSON(w, http.StatusOK, readings)
}

// ListAbnormalByArea handles GET /environment-data/abnormal/area/{area_id}.
func (h *ReadingHandler) ListAbnormalByArea(w http.ResponseWriter, r *http.Request) {
	areaID, err := pathInt64(r, "area_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid area id")
		return
	}
	start, err := queryTime(r, "start_time")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_time")
		return
	}
	end, err := queryTime(r, "end_time")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_time")
		return
	}
	readings, err := h.service.ListAbnormalByArea(r.Context(), areaID, start, end)
	if err != nil {
		h.logger.Error("failed to list abnormal readings", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if readings == nil {
		readings = []models.Reading{}
	}
	writeJSON(w, http.StatusOK, readings)
}

// Audit handles PUT /environment-data/{id}/audit.
func (h *ReadingHandler) Audit(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("audit_status")
	var reason *string
	if raw := r.URL.Query().Get("abnormal_reason"); raw != "" {
		reason = &raw
	}
	reading, err := h.service.SetAuditStatus(r.Context(), r.PathValue("id"), status, reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

// Delete handles DELETE /environment-data/{id}.
func (h *ReadingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
