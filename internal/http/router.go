package httpserver

import (
	"net/http"

	"parkmonitor/internal/http/handlers"
	"parkmonitor/internal/http/middleware"
)

// Routes groups the handlers the router wires up.
type Routes struct {
	Indicators   *handlers.IndicatorHandler
	Devices      *handlers.DeviceHandler
	Readings     *handlers.ReadingHandler
	Calibrations *handlers.CalibrationHandler
	Reports      *handlers.ReportHandler
	Health       http.Handler
}

// NewRouter sets up HTTP routing. Mutating endpoints and management reports
// require a manager principal; reading ingest and plain lookups stay open,
// matching the upstream network's submission model.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	manager := middleware.RequireManager

	if h := routes.Indicators; h != nil {
		mux.HandleFunc("POST /monitor-indices", manager(h.Create))
		mux.HandleFunc("GET /monitor-indices", h.List)
		mux.HandleFunc("GET /monitor-indices/{id}", h.Get)
		mux.HandleFunc("PATCH /monitor-indices/{id}", manager(h.Update))
		mux.HandleFunc("DELETE /monitor-indices/{id}", manager(h.Delete))
	}

	if h := routes.Devices; h != nil {
		mux.HandleFunc("POST /monitor-devices", manager(h.Create))
		mux.HandleFunc("GET /monitor-devices", h.List)
		mux.HandleFunc("GET /monitor-devices/need-calibration", h.NeedCalibration)
		mux.HandleFunc("GET /monitor-devices/{id}", h.Get)
		mux.HandleFunc("PUT /monitor-devices/{id}/status", manager(h.UpdateStatus))
		mux.HandleFunc("PATCH /monitor-devices/{id}", manager(h.Update))
		mux.HandleFunc("DELETE /monitor-devices/{id}", manager(h.Delete))
	}

	if h := routes.Readings; h != nil {
		mux.HandleFunc("POST /environment-data", h.Create)
		mux.HandleFunc("GET /environment-data/{id}", h.Get)
		mux.HandleFunc("GET /environment-data/device/{device_id}", h.ListByDevice)
		mux.HandleFunc("GET /environment-data/abnormal/area/{area_id}", manager(h.ListAbnormalByArea))
		mux.HandleFunc("PUT /environment-data/{id}/audit", manager(h.Audit))
		mux.HandleFunc("DELETE /environment-data/{id}", manager(h.Delete))
	}

	if h := routes.Calibrations; h != nil {
		mux.HandleFunc("POST /calibration-records", manager(h.Create))
		mux.HandleFunc("GET /calibration-records/device/{device_id}", h.ListByDevice)
		mux.HandleFunc("DELETE /calibration-records/{id}", manager(h.Delete))
	}

	if h := routes.Reports; h != nil {
		mux.HandleFunc("GET /reports/device-quality-rate", manager(h.DeviceQualityRate))
		mux.HandleFunc("GET /reports/overdue-calibration-data", manager(h.OverdueCalibration))
		mux.HandleFunc("GET /reports/core-protection-abnormal", manager(h.CoreAreaAbnormal))
		mux.HandleFunc("GET /statistics/area/{area_id}", manager(h.AreaStatistics))
	}

	if routes.Health != nil {
		mux.Handle("GET /health", routes.Health)
	}

	return mux
}
