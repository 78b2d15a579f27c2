package models

import "time"

// Data-quality grades assigned by the submitter. The grades are domain
// vocabulary inherited from the monitoring network and are stored verbatim.
const (
	QualityExcellent = "优"
	QualityGood      = "良"
	QualityFair      = "中"
	QualityPoor      = "差"
)

// Audit statuses an operator may assign to a reading.
const (
	AuditStatusUnaudited           = "unaudited"
	AuditStatusAudited             = "audited"
	AuditStatusPendingVerification = "pending_verification"
)

// ValidQuality reports whether grade belongs to the closed set.
func ValidQuality(grade string) bool {
	switch grade {
	case QualityExcellent, QualityGood, QualityFair, QualityPoor:
		return true
	}
	return false
}

// ValidAuditStatus reports whether status belongs to the closed set.
func ValidAuditStatus(status string) bool {
	switch status {
	case AuditStatusUnaudited, AuditStatusAudited, AuditStatusPendingVerification:
		return true
	}
	return false
}

// Reading is a single timestamped measurement of an indicator by a device.
// IsAbnormal and AbnormalReason are fixed at ingest by threshold
// classification; the audit workflow may later annotate the reason but never
// reverses the flag.
type Reading struct {
	ID             string    `db:"id" json:"data_id"`
	IndicatorID    string    `db:"indicator_id" json:"index_id"`
	DeviceID       int64     `db:"device_id" json:"device_id"`
	AreaID         int64     `db:"area_id" json:"area_id"`
	CollectTime    time.Time `db:"collect_time" json:"collect_time"`
	Value          float64   `db:"value" json:"monitor_value"`
	Quality        string    `db:"quality" json:"data_quality"`
	IsAbnormal     bool      `db:"is_abnormal" json:"is_abnormal"`
	AbnormalReason *string   `db:"abnormal_reason" json:"abnormal_reason"`
	AuditStatus    string    `db:"audit_status" json:"audit_status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
