package models

import "time"

// Calibration results.
const (
	CalibrationPass = "pass"
	CalibrationFail = "fail"
)

// ValidCalibrationResult reports whether result belongs to the closed set.
func ValidCalibrationResult(result string) bool {
	return result == CalibrationPass || result == CalibrationFail
}

// CalibrationRecord is one entry of the append-mostly calibration ledger.
// Inserting a record also moves the device's last-calibration timestamp.
type CalibrationRecord struct {
	ID              string    `db:"id" json:"record_id"`
	DeviceID        int64     `db:"device_id" json:"device_id"`
	CalibrationTime time.Time `db:"calibration_time" json:"calibration_time"`
	CalibratorID    int64     `db:"calibrator_id" json:"calibrator_id"`
	Result          string    `db:"result" json:"calibration_result"`
	Description     string    `db:"description" json:"calibration_desc"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
