package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/service"
)

// ReportHandler serves the derived reporting views.
type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler returns handler.
func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

// DeviceQualityRate handles GET /reports/device-quality-rate.
func (h *ReportHandler) DeviceQualityRate(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.DeviceQualityRate(r.Context(), queryInt(r, "days", 90), time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to build quality-rate report", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if report == nil {
		report = []models.DeviceQualityRate{}
	}
	writeJSON(w, http.StatusOK, report)
}

// OverdueCalibration handles GET /reports/overdue-calibration-data.
func (h *ReportHandler) OverdueCalibration(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.OverdueCalibrationReadings(r.Context(), queryInt(r, "days", 30), time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to build overdue-calibration report", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if report == nil {
		report = []models.OverdueCalibrationReading{}
	}
	writeJSON(w, http.StatusOK, report)
}

// CoreAreaAbnormal handles GET /reports/core-protection-abnormal.
func (h *ReportHandler) CoreAreaAbnormal(w http.ResponseWriter, r *http.Request) {
	indicatorName := r.URL.Query().Get("index_name")
	report, err := h.service.CoreAreaAbnormal(r.Context(), indicatorName, queryInt(r, "days", 30), time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to build core-area abnormal report", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if report == nil {
		report = []models.CoreAreaAbnormalReading{}
	}
	writeJSON(w, http.StatusOK, report)
}

// AreaStatistics handles GET /statistics/area/{area_id}.
func (h *ReportHandler) AreaStatistics(w http.ResponseWriter, r *http.Request) {
	areaID, err := pathInt64(r, "area_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid area id")
		return
	}
	stats, err := h.service.AreaStatistics(r.Context(), areaID, queryInt(r, "days", 30), time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to build area statistics", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
