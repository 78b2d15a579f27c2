package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/service"
)

// CalibrationHandler serves the calibration ledger endpoints.
type CalibrationHandler struct {
	service *service.CalibrationService
	logger  *zap.Logger
}

// NewCalibrationHandler returns handler.
func NewCalibrationHandler(service *service.CalibrationService, logger *zap.Logger) *CalibrationHandler {
	return &CalibrationHandler{service: service, logger: logger}
}

// Create handles POST /calibration-records.
func (h *CalibrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCalibrationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	rec, err := h.service.Record(r.Context(), input, time.Now().UTC())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// ListByDevice handles GET /calibration-records/device/{device_id}.
func (h *CalibrationHandler) ListByDevice(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathInt64(r, "device_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid device id")
		return
	}
	records, err := h.service.ListByDevice(r.Context(), deviceID)
	if err != nil {
		h.logger.Error("failed to list calibration records", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []models.CalibrationRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Delete handles DELETE /calibration-records/{id}.
func (h *CalibrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
