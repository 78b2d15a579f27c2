package models

import "time"

// Indicator is a monitored environmental metric with acceptable bounds.
// Threshold edits are prospective only: readings keep the classification
// computed against the thresholds in effect when they were ingested.
type Indicator struct {
	ID             string    `db:"id" json:"index_id"`
	Name           string    `db:"name" json:"index_name"`
	Unit           string    `db:"unit" json:"unit"`
	UpperThreshold float64   `db:"upper_threshold" json:"upper_threshold"`
	LowerThreshold float64   `db:"lower_threshold" json:"lower_threshold"`
	Frequency      string    `db:"frequency" json:"monitor_frequency"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// IndicatorUpdate carries optional fields for a partial update; nil fields
// are left untouched.
type IndicatorUpdate struct {
	Name           *string  `json:"index_name"`
	Unit           *string  `json:"unit"`
	UpperThreshold *float64 `json:"upper_threshold"`
	LowerThreshold *float64 `json:"lower_threshold"`
	Frequency      *string  `json:"monitor_frequency"`
}
