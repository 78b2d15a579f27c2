package repository

import (
	"context"
	"database/sql"
	"time"

	"parkmonitor/internal/models"
)

// DeviceRepository persists monitoring devices.
type DeviceRepository struct {
	db *sql.DB
}

// NewDeviceRepository returns repository.
func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

const deviceColumns = `id, type, area_id, install_time, calibration_cycle, last_calibration_time, status, protocol, latitude, longitude, created_at, updated_at`

// Create inserts a new device and fills its assigned id.
func (r *DeviceRepository) Create(ctx context.Context, d *models.Device) error {
	const query = `
		INSERT INTO devices (type, area_id, install_time, calibration_cycle, last_calibration_time, status, protocol, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		d.Type,
		d.AreaID,
		d.InstallTime,
		d.CalibrationCycle,
		d.LastCalibrationTime,
		d.Status,
		d.Protocol,
		d.Latitude,
		d.Longitude,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// GetByID returns one device or sql.ErrNoRows.
func (r *DeviceRepository) GetByID(ctx context.Context, id int64) (*models.Device, error) {
	const query = `
		SELECT ` + deviceColumns + `
		FROM devices
		WHERE id = $1
	`
	var d models.Device
	if err := scanDevice(r.db.QueryRowContext(ctx, query, id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListAll returns every device ordered by id.
func (r *DeviceRepository) ListAll(ctx context.Context) ([]models.Device, error) {
	const query = `
		SELECT ` + deviceColumns + `
		FROM devices
		ORDER BY id
	`
	return r.queryDevices(ctx, query)
}

// ListByArea returns devices deployed in the given area.
func (r *DeviceRepository) ListByArea(ctx context.Context, areaID int64) ([]models.Device, error) {
	const query = `
		SELECT ` + deviceColumns + `
		FROM devices
		WHERE area_id = $1
		ORDER BY id
	`
	return r.queryDevices(ctx, query, areaID)
}

// ListNeedingCalibration returns non-offline devices that were never
// calibrated or whose calibration cycle has fully elapsed by now. The
// predicate is evaluated against the caller-supplied instant, never a
// global clock.
func (r *DeviceRepository) ListNeedingCalibration(ctx context.Context, now time.Time) ([]models.Device, error) {
	const query = `
		SELECT ` + deviceColumns + `
		FROM devices
		WHERE status <> 'offline'
		  AND (last_calibration_time IS NULL
		   OR last_calibration_time + make_interval(days => calibration_cycle) <= $1)
		ORDER BY id
	`
	return r.queryDevices(ctx, query, now)
}

// UpdateStatus sets the operational status. Returns sql.ErrNoRows when the
// device does not exist.
func (r *DeviceRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Device, error) {
	const query = `
		UPDATE devices SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + deviceColumns + `
	`
	var d models.Device
	if err := scanDevice(r.db.QueryRowContext(ctx, query, id, status), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Update applies the non-nil fields of upd and bumps updated_at.
func (r *DeviceRepository) Update(ctx context.Context, id int64, upd models.DeviceUpdate) (*models.Device, error) {
	const query = `
		UPDATE devices SET
			type = COALESCE($2, type),
			area_id = COALESCE($3, area_id),
			calibration_cycle = COALESCE($4, calibration_cycle),
			status = COALESCE($5, status),
			protocol = COALESCE($6, protocol),
			latitude = COALESCE($7, latitude),
			longitude = COALESCE($8, longitude),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + deviceColumns + `
	`
	var d models.Device
	err := scanDevice(r.db.QueryRowContext(ctx, query,
		id,
		upd.Type,
		upd.AreaID,
		upd.CalibrationCycle,
		upd.Status,
		upd.Protocol,
		upd.Latitude,
		upd.Longitude,
	), &d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a device. Returns sql.ErrNoRows when absent.
func (r *DeviceRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM devices WHERE id = $1`
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

func (r *DeviceRepository) queryDevices(ctx context.Context, query string, args ...any) ([]models.Device, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		var d models.Device
		if err := scanDevice(rows, &d); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func scanDevice(row rowScanner, d *models.Device) error {
	return row.Scan(
		&d.ID,
		&d.Type,
		&d.AreaID,
		&d.InstallTime,
		&d.CalibrationCycle,
		&d.LastCalibrationTime,
		&d.Status,
		&d.Protocol,
		&d.Latitude,
		&d.Longitude,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}
