package models

import "time"

// AreaCategoryCoreProtection marks areas under the strictest protection
// regime; the abnormal-data report only covers these.
const AreaCategoryCoreProtection = "core_protection"

// DeviceQualityRate is one row of the device quality-rate report.
type DeviceQualityRate struct {
	DeviceID       int64   `json:"device_id"`
	DeviceType     string  `json:"device_type"`
	AreaName       string  `json:"area_name"`
	TotalCount     int64   `json:"total_data_count"`
	QualifiedCount int64   `json:"qualified_count"`
	QualifiedRate  float64 `json:"qualified_rate"`
}

// OverdueCalibrationReading is a reading collected by a device whose
// calibration is strictly overdue.
type OverdueCalibrationReading struct {
	ReadingID           string     `json:"data_id"`
	CollectTime         time.Time  `json:"collect_time"`
	IndicatorID         string     `json:"index_id"`
	IndicatorName       string     `json:"index_name"`
	Value               float64    `json:"monitor_value"`
	DeviceID            int64      `json:"device_id"`
	DeviceType          string     `json:"device_type"`
	CalibrationCycle    int        `json:"calibration_cycle"`
	LastCalibrationTime *time.Time `json:"last_calibration_time"`
	Quality             string     `json:"data_quality"`
}

// CoreAreaAbnormalReading is one row of the protected-area abnormal report.
type CoreAreaAbnormalReading struct {
	ReadingID      string    `json:"data_id"`
	CollectTime    time.Time `json:"collect_time"`
	Value          float64   `json:"monitor_value"`
	UpperThreshold float64   `json:"upper_threshold"`
	LowerThreshold float64   `json:"lower_threshold"`
	DeviceID       int64     `json:"device_id"`
	DeviceType     string    `json:"device_type"`
	DeviceStatus   string    `json:"run_status"`
	AreaName       string    `json:"area_name"`
	AbnormalReason *string   `json:"abnormal_reason"`
}

// AreaStatistics aggregates readings for one area over a window.
type AreaStatistics struct {
	TotalCount    int64   `json:"total_count"`
	AbnormalCount int64   `json:"abnormal_count"`
	AbnormalRate  float64 `json:"abnormal_rate"`
	AvgValue      float64 `json:"avg_value"`
	MinValue      float64 `json:"min_value"`
	MaxValue      float64 `json:"max_value"`
}
