package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/repository"
)

func setupDeviceService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *DeviceService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewDeviceService(repository.NewDeviceRepository(db), zap.NewNop())
	return db, mock, svc
}

func TestDeviceCreateAppliesDefaults(t *testing.T) {
	db, mock, svc := setupDeviceService(t)
	defer db.Close()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO devices`).
		WithArgs("air_quality", nil, now, models.DefaultCalibrationCycle, nil,
			models.DeviceStatusNormal, "", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	device, err := svc.Create(context.Background(), CreateDeviceInput{Type: "air_quality"}, now)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCalibrationCycle, device.CalibrationCycle)
	assert.Equal(t, models.DeviceStatusNormal, device.Status)
	assert.Equal(t, now, device.InstallTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceCreateRejectsBadInput(t *testing.T) {
	db, _, svc := setupDeviceService(t)
	defer db.Close()

	_, err := svc.Create(context.Background(), CreateDeviceInput{}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create(context.Background(), CreateDeviceInput{Type: "air_quality", CalibrationCycle: -5}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create(context.Background(), CreateDeviceInput{Type: "air_quality", Status: "sleeping"}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeviceUpdateStatusRejectsUnknownValue(t *testing.T) {
	db, _, svc := setupDeviceService(t)
	defer db.Close()

	_, err := svc.UpdateStatus(context.Background(), 1, "hibernating")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeviceUpdateStatusNotFound(t *testing.T) {
	db, mock, svc := setupDeviceService(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE devices SET status`).
		WithArgs(int64(404), models.DeviceStatusFault).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.UpdateStatus(context.Background(), 404, models.DeviceStatusFault)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceListNeedingCalibrationThreadsNow(t *testing.T) {
	db, mock, svc := setupDeviceService(t)
	defer db.Close()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "type", "area_id", "install_time", "calibration_cycle", "last_calibration_time",
		"status", "protocol", "latitude", "longitude", "created_at", "updated_at",
	})

	mock.ExpectQuery(`FROM devices`).
		WithArgs(now).
		WillReturnRows(rows)

	devices, err := svc.ListNeedingCalibration(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, devices)
	assert.NoError(t, mock.ExpectationsWereMet())
}
