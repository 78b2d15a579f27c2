package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/service"
)

// DeviceHandler serves the device registry endpoints.
type DeviceHandler struct {
	service *service.DeviceService
	logger  *zap.Logger
}

// NewDeviceHandler returns handler.
func NewDeviceHandler(service *service.DeviceService, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{service: service, logger: logger}
}

// Create handles POST /monitor-devices.
func (h *DeviceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateDeviceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	device, err := h.service.Create(r.Context(), input, time.Now().UTC())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, device)
}

// Get handles GET /monitor-devices/{id}.
func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid device id")
		return
	}
	device, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, device)
}

// List handles GET /monitor-devices with an optional area_id filter.
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	var areaID *int64
	if raw := r.URL.Query().Get("area_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid area_id")
			return
		}
		areaID = &parsed
	}
	devices, err := h.service.List(r.Context(), areaID)
	if err != nil {
		h.logger.Error("failed to list devices", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if devices == nil {
		devices = []models.Device{}
	}
	writeJSON(w, http.StatusOK, devices)
}

// NeedCalibration handles GET /monitor-devices/need-calibration.
func (h *DeviceHandler) NeedCalibration(w http.ResponseWriter, r *http.Request) {
	devices, err := h.service.ListNeedingCalibration(r.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to list devices needing calibration", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if devices == nil {
		devices = []models.Device{}
	}
	writeJSON(w, http.StatusOK, devices)
}

// UpdateStatus handles PUT /monitor-devices/{id}/status.
func (h *DeviceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid device id")
		return
	}
	status := r.URL.Query().Get("status")
	device, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, device)
}

// Update handles PATCH /monitor-devices/{id}.
func (h *DeviceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid device id")
		return
	}
	var upd models.DeviceUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	device, err := h.service.Update(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, device)
}

// Delete handles DELETE /monitor-devices/{id}.
func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid device id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
