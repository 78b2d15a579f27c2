package repository

import (
	"context"
	"database/sql"

	"parkmonitor/internal/models"
)

// CalibrationRepository persists the calibration ledger.
type CalibrationRepository struct {
	db *sql.DB
}

// NewCalibrationRepository returns repository.
func NewCalibrationRepository(db *sql.DB) *CalibrationRepository {
	return &CalibrationRepository{db: db}
}

const calibrationColumns = `id, device_id, calibration_time, calibrator_id, result, description, created_at, updated_at`

// Create inserts a ledger entry and moves the device's last-calibration
// timestamp in the same transaction, so neither is ever visible without the
// other. A record against a device the registry does not know is still
// persisted; the device update is then a no-op.
func (r *CalibrationRepository) Create(ctx context.Context, rec *models.CalibrationRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insertQuery = `
		INSERT INTO calibration_records (id, device_id, calibration_time, calibrator_id, result, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		rec.ID,
		rec.DeviceID,
		rec.CalibrationTime,
		rec.CalibratorID,
		rec.Result,
		rec.Description,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return err
	}

	const deviceQuery = `
		UPDATE devices SET last_calibration_time = $2, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, deviceQuery, rec.DeviceID, rec.CalibrationTime); err != nil {
		return err
	}

	return tx.Commit()
}

// ListByDevice returns ledger entries for one device, latest calibration
// first.
func (r *CalibrationRepository) ListByDevice(ctx context.Context, deviceID int64) ([]models.CalibrationRecord, error) {
	const query = `
		SELECT ` + calibrationColumns + `
		FROM calibration_records
		WHERE device_id = $1
		ORDER BY calibration_time DESC
	`
	rows, err := r.db.QueryContext(ctx, query, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CalibrationRecord
	for rows.Next() {
		var rec models.CalibrationRecord
		err := rows.Scan(
			&rec.ID,
			&rec.DeviceID,
			&rec.CalibrationTime,
			&rec.CalibratorID,
			&rec.Result,
			&rec.Description,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Exists reports whether a record with the given id is stored.
func (r *CalibrationRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM calibration_records WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes a ledger entry; an administrative override, not part of
// the normal lifecycle. Returns sql.ErrNoRows when absent.
func (r *CalibrationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM calibration_records WHERE id = $1`
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
