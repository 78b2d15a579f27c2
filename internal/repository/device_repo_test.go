package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkmonitor/internal/models"
)

func setupDeviceRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *DeviceRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewDeviceRepository(db)
}

func deviceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "type", "area_id", "install_time", "calibration_cycle", "last_calibration_time",
		"status", "protocol", "latitude", "longitude", "created_at", "updated_at",
	})
}

func TestDeviceCreateAssignsID(t *testing.T) {
	db, mock, repo := setupDeviceRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO devices`).
		WithArgs("air_quality", nil, now, 30, nil, models.DeviceStatusNormal, "LoRa", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	device := &models.Device{
		Type:             "air_quality",
		InstallTime:      now,
		CalibrationCycle: 30,
		Status:           models.DeviceStatusNormal,
		Protocol:         "LoRa",
	}
	require.NoError(t, repo.Create(context.Background(), device))
	assert.Equal(t, int64(5), device.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceListNeedingCalibration(t *testing.T) {
	db, mock, repo := setupDeviceRepo(t)
	defer db.Close()

	now := time.Now()
	overdue := now.Add(-45 * 24 * time.Hour)
	rows := deviceRows().
		AddRow(int64(2), "air_quality", int64(10), now.Add(-90*24*time.Hour), 30, overdue,
			models.DeviceStatusNormal, "LoRa", nil, nil, now, now).
		AddRow(int64(3), "water_quality", int64(11), now.Add(-60*24*time.Hour), 30, nil,
			models.DeviceStatusFault, "4G", nil, nil, now, now)

	mock.ExpectQuery(`FROM devices`).
		WithArgs(now).
		WillReturnRows(rows)

	devices, err := repo.ListNeedingCalibration(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, int64(2), devices[0].ID)
	require.NotNil(t, devices[0].LastCalibrationTime)
	assert.Nil(t, devices[1].LastCalibrationTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceUpdateStatusNotFound(t *testing.T) {
	db, mock, repo := setupDeviceRepo(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE devices SET status`).
		WithArgs(int64(404), models.DeviceStatusOffline).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), 404, models.DeviceStatusOffline)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceListByArea(t *testing.T) {
	db, mock, repo := setupDeviceRepo(t)
	defer db.Close()

	now := time.Now()
	rows := deviceRows().
		AddRow(int64(1), "air_quality", int64(10), now, 30, nil,
			models.DeviceStatusNormal, "LoRa", nil, nil, now, now)

	mock.ExpectQuery(`FROM devices`).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	devices, err := repo.ListByArea(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	require.NotNil(t, devices[0].AreaID)
	assert.Equal(t, int64(10), *devices[0].AreaID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
