package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parkmonitor/internal/anomaly"
	"parkmonitor/internal/models"
)

// ReadingRepository persists readings and owns their ingest-time
// classification.
type ReadingRepository struct {
	db *sql.DB
}

// NewReadingRepository returns repository.
func NewReadingRepository(db *sql.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

const readingColumns = `id, indicator_id, device_id, area_id, collect_time, value, quality, is_abnormal, abnormal_reason, audit_status, created_at, updated_at`

// Create classifies the reading against its indicator and inserts it. Both
// the threshold read and the insert run in one transaction so the stored
// flag always matches the thresholds in effect at creation time. An unknown
// indicator classifies as normal rather than rejecting the reading.
func (r *ReadingRepository) Create(ctx context.Context, reading *models.Reading) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const indicatorQuery = `
		SELECT upper_threshold, lower_threshold
		FROM indicators
		WHERE id = $1
	`
	var indicator *models.Indicator
	var upper, lower float64
	err = tx.QueryRowContext(ctx, indicatorQuery, reading.IndicatorID).Scan(&upper, &lower)
	switch {
	case err == nil:
		indicator = &models.Indicator{ID: reading.IndicatorID, UpperThreshold: upper, LowerThreshold: lower}
	case errors.Is(err, sql.ErrNoRows):
		// registry gap: ingest proceeds unclassified
	default:
		return err
	}

	isAbnormal, reason := anomaly.Classify(indicator, reading.Value)
	reading.IsAbnormal = isAbnormal
	reading.AbnormalReason = nil
	if reason != "" {
		reading.AbnormalReason = &reason
	}
	if reading.AuditStatus == "" {
		reading.AuditStatus = models.AuditStatusUnaudited
	}

	const insertQuery = `
		INSERT INTO readings (id, indicator_id, device_id, area_id, collect_time, value, quality, is_abnormal, abnormal_reason, audit_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		reading.ID,
		reading.IndicatorID,
		reading.DeviceID,
		reading.AreaID,
		reading.CollectTime,
		reading.Value,
		reading.Quality,
		reading.IsAbnormal,
		reading.AbnormalReason,
		reading.AuditStatus,
	).Scan(&reading.CreatedAt, &reading.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID returns one reading or sql.ErrNoRows.
func (r *ReadingRepository) GetByID(ctx context.Context, id string) (*models.Reading, error) {
	const query = `
		SELECT ` + readingColumns + `
		FROM readings
		WHERE id = $1
	`
	var reading models.Reading
	if err := scanReading(r.db.QueryRowContext(ctx, query, id), &reading); err != nil {
		return nil, err
	}
	return &reading, nil
}

// Exists reports whether a reading with the given id is stored.
func (r *ReadingRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM readings WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByDevice returns readings of one device newest-first, optionally
// bounded by collect time.
func (r *ReadingRepository) ListByDevice(ctx context.Context, deviceID int64, start, end *time.Time) ([]models.Reading, error) {
	const query = `
		SELECT ` + readingColumns + `
		FROM readings
		WHERE device_id = $1
		  AND ($2::timestamptz IS NULL OR collect_time >= $2)
		  AND ($3::timestamptz IS NULL OR collect_time <= $3)
		ORDER BY collect_time DESC
	`
	return r.queryReadings(ctx, query, deviceID, start, end)
}

// ListAbnormalByArea returns abnormal readings of one area newest-first,
// optionally bounded by collect time.
func (r *ReadingRepository) ListAbnormalByArea(ctx context.Context, areaID int64, start, end *time.Time) ([]models.Reading, error) {
	const query = `
		SELECT ` + readingColumns + `
		FROM readings
		WHERE area_id = $1
		  AND is_abnormal
		  AND ($2::timestamptz IS NULL OR collect_time >= $2)
		  AND ($3::timestamptz IS NULL OR collect_time <= $3)
		ORDER BY collect_time DESC
	`
	return r.queryReadings(ctx, query, areaID, start, end)
}

// SetAuditStatus updates the disposition of a reading. A nil reason keeps
// the stored abnormal reason; the abnormal flag itself is never touched
// here. Returns sql.ErrNoRows when the reading does not exist.
func (r *ReadingRepository) SetAuditStatus(ctx context.Context, id, status string, reason *string) (*models.Reading, error) {
	const query = `
		UPDATE readings SET
			audit_status = $2,
			abnormal_reason = COALESCE($3, abnormal_reason),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + readingColumns + `
	`
	var reading models.Reading
	if err := scanReading(r.db.QueryRowContext(ctx, query, id, status, reason), &reading); err != nil {
		return nil, err
	}
	return &reading, nil
}

// Delete removes a reading. Returns sql.ErrNoRows when absent.
func (r *ReadingRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM readings WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ReadingRepository) queryReadings(ctx context.Context, query string, args ...any) ([]models.Reading, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []models.Reading
	for rows.Next() {
		var reading models.Reading
		if err := scanReading(rows, &reading); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

func scanReading(row rowScanner, reading *models.Reading) error {
	return row.Scan(
		&reading.ID,
		&reading.IndicatorID,
		&reading.DeviceID,
		&reading.AreaID,
		&reading.CollectTime,
		&reading.Value,
		&reading.Quality,
		&reading.IsAbnormal,
		&reading.AbnormalReason,
		&reading.AuditStatus,
		&reading.CreatedAt,
		&reading.UpdatedAt,
	)
}
