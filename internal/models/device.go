package models

import "time"

// Device operational statuses.
const (
	DeviceStatusNormal  = "normal"
	DeviceStatusFault   = "fault"
	DeviceStatusOffline = "offline"
)

// DefaultCalibrationCycle is applied when a device is created without an
// explicit cycle, in days.
const DefaultCalibrationCycle = 30

// ValidDeviceStatus reports whether status belongs to the closed set.
func ValidDeviceStatus(status string) bool {
	switch status {
	case DeviceStatusNormal, DeviceStatusFault, DeviceStatusOffline:
		return true
	}
	return false
}

// Device is a fixed sensing device deployed in a protected area.
type Device struct {
	ID                  int64      `db:"id" json:"id"`
	Type                string     `db:"type" json:"type"`
	AreaID              *int64     `db:"area_id" json:"deployment_area_id"`
	InstallTime         time.Time  `db:"install_time" json:"install_time"`
	CalibrationCycle    int        `db:"calibration_cycle" json:"calibration_cycle"`
	LastCalibrationTime *time.Time `db:"last_calibration_time" json:"last_calibration_time"`
	Status              string     `db:"status" json:"status"`
	Protocol            string     `db:"protocol" json:"communication_protocol"`
	Latitude            *float64   `db:"latitude" json:"latitude"`
	Longitude           *float64   `db:"longitude" json:"longitude"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// DeviceUpdate carries optional fields for a partial update.
type DeviceUpdate struct {
	Type             *string  `json:"type"`
	AreaID           *int64   `json:"deployment_area_id"`
	CalibrationCycle *int     `json:"calibration_cycle"`
	Status           *string  `json:"status"`
	Protocol         *string  `json:"communication_protocol"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}
