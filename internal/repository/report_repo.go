package repository

import (
	"context"
	"database/sql"
	"time"

	"parkmonitor/internal/models"
)

// ReportRepository runs the read-only reporting joins.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository returns repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// DeviceQualityRate counts windowed readings and the qualified subset per
// device. Devices with no readings in the window still appear with zero
// counts (outer join); the rate itself is computed by the service.
func (r *ReportRepository) DeviceQualityRate(ctx context.Context, since time.Time) ([]models.DeviceQualityRate, error) {
	const query = `
		SELECT d.id, d.type, a.name,
		       COUNT(rd.id) AS total_count,
		       COALESCE(SUM(CASE WHEN rd.quality IN ('优', '良') THEN 1 ELSE 0 END), 0) AS qualified_count
		FROM devices d
		JOIN areas a ON d.area_id = a.id
		LEFT JOIN readings rd ON rd.device_id = d.id AND rd.collect_time >= $1
		GROUP BY d.id, d.type, a.name
	`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.DeviceQualityRate
	for rows.Next() {
		var row models.DeviceQualityRate
		err := rows.Scan(
			&row.DeviceID,
			&row.DeviceType,
			&row.AreaName,
			&row.TotalCount,
			&row.QualifiedCount,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// OverdueCalibrationReadings returns windowed readings whose device is
// strictly overdue for calibration. The predicate here is strict (elapsed
// whole days > cycle), deliberately tighter than the scheduler's >= used in
// ListNeedingCalibration; the two are kept apart on purpose.
func (r *ReportRepository) OverdueCalibrationReadings(ctx context.Context, since, now time.Time) ([]models.OverdueCalibrationReading, error) {
	const query = `
		SELECT rd.id, rd.collect_time, rd.indicator_id, i.name, rd.value,
		       d.id, d.type, d.calibration_cycle, d.last_calibration_time, rd.quality
		FROM readings rd
		JOIN devices d ON rd.device_id = d.id
		JOIN indicators i ON rd.indicator_id = i.id
		WHERE rd.collect_time >= $1
		  AND (d.last_calibration_time IS NULL
		   OR d.last_calibration_time + make_interval(days => d.calibration_cycle + 1) <= $2)
		ORDER BY d.id, rd.collect_time DESC
	`
	rows, err := r.db.QueryContext(ctx, query, since, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.OverdueCalibrationReading
	for rows.Next() {
		var row models.OverdueCalibrationReading
		err := rows.Scan(
			&row.ReadingID,
			&row.CollectTime,
			&row.IndicatorID,
			&row.IndicatorName,
			&row.Value,
			&row.DeviceID,
			&row.DeviceType,
			&row.CalibrationCycle,
			&row.LastCalibrationTime,
			&row.Quality,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// CoreAreaAbnormal returns windowed abnormal readings for one indicator
// name inside core-protection areas. An indicator name nobody registered
// simply yields no rows.
func (r *ReportRepository) CoreAreaAbnormal(ctx context.Context, indicatorName string, since time.Time) ([]models.CoreAreaAbnormalReading, error) {
	const query = `
		SELECT rd.id, rd.collect_time, rd.value, i.upper_threshold, i.lower_threshold,
		       d.id, d.type, d.status, a.name, rd.abnormal_reason
		FROM readings rd
		JOIN indicators i ON rd.indicator_id = i.id
		JOIN devices d ON rd.device_id = d.id
		JOIN areas a ON rd.area_id = a.id
		WHERE a.category = 'core_protection'
		  AND i.name = $1
		  AND rd.is_abnormal
		  AND rd.collect_time >= $2
		ORDER BY rd.collect_time DESC
	`
	rows, err := r.db.QueryContext(ctx, query, indicatorName, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.CoreAreaAbnormalReading
	for rows.Next() {
		var row models.CoreAreaAbnormalReading
		err := rows.Scan(
			&row.ReadingID,
			&row.CollectTime,
			&row.Value,
			&row.UpperThreshold,
			&row.LowerThreshold,
			&row.DeviceID,
			&row.DeviceType,
			&row.DeviceStatus,
			&row.AreaName,
			&row.AbnormalReason,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// AreaStatistics aggregates readings for one area over [since, until].
func (r *ReportRepository) AreaStatistics(ctx context.Context, areaID int64, since, until time.Time) (*models.AreaStatistics, error) {
	const query = `
		SELECT COUNT(id),
		       COALESCE(SUM(CASE WHEN is_abnormal THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(value), 0),
		       COALESCE(MIN(value), 0),
		       COALESCE(MAX(value), 0)
		FROM readings
		WHERE area_id = $1 AND collect_time >= $2 AND collect_time <= $3
	`
	var stats models.AreaStatistics
	err := r.db.QueryRowContext(ctx, query, areaID, since, until).Scan(
		&stats.TotalCount,
		&stats.AbnormalCount,
		&stats.AvgValue,
		&stats.MinValue,
		&stats.MaxValue,
	)
	if err != nil {
		return nil, err
	}
	if stats.TotalCount > 0 {
		stats.AbnormalRate = float64(stats.AbnormalCount) / float64(stats.TotalCount) * 100
	}
	return &stats, nil
}
