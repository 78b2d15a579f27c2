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

	"parkmonitor/internal/repository"
)

func setupReportService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ReportService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewReportService(repository.NewReportRepository(db), nil, zap.NewNop())
	return db, mock, svc
}

func TestDeviceQualityRateComputesAndSorts(t *testing.T) {
	db, mock, svc := setupReportService(t)
	defer db.Close()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "type", "name", "total_count", "qualified_count"}).
		AddRow(int64(1), "air_quality", "North valley", int64(3), int64(1)).
		AddRow(int64(2), "water_quality", "South ridge", int64(0), int64(0)).
		AddRow(int64(3), "noise", "East gate", int64(4), int64(4))

	mock.ExpectQuery(`SELECT d.id, d.type, a.name`).
		WithArgs(now.AddDate(0, 0, -90)).
		WillReturnRows(rows)

	report, err := svc.DeviceQualityRate(context.Background(), 90, now)
	require.NoError(t, err)
	require.Len(t, report, 3)

	// sorted by rate desc; a device with no readings keeps 0.0 rather than erroring
	assert.Equal(t, int64(3), report[0].DeviceID)
	assert.InDelta(t, 100.0, report[0].QualifiedRate, 1e-9)
	assert.Equal(t, int64(1), report[1].DeviceID)
	assert.InDelta(t, 33.33, report[1].QualifiedRate, 1e-9)
	assert.Equal(t, int64(2), report[2].DeviceID)
	assert.Zero(t, report[2].QualifiedRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportsRejectBadWindow(t *testing.T) {
	db, _, svc := setupReportService(t)
	defer db.Close()

	now := time.Now()

	_, err := svc.DeviceQualityRate(context.Background(), 0, now)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.OverdueCalibrationReadings(context.Background(), 400, now)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.CoreAreaAbnormal(context.Background(), "PM2.5", -1, now)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.AreaStatistics(context.Background(), 1, 0, now)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCoreAreaAbnormalRequiresName(t *testing.T) {
	db, _, svc := setupReportService(t)
	defer db.Close()

	_, err := svc.CoreAreaAbnormal(context.Background(), "", 30, time.Now())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOverdueCalibrationPassesWindowBounds(t *testing.T) {
	db, mock, svc := setupReportService(t)
	defer db.Close()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "collect_time", "indicator_id", "name", "value",
		"device_id", "type", "calibration_cycle", "last_calibration_time", "quality",
	})

	mock.ExpectQuery(`SELECT rd.id, rd.collect_time`).
		WithArgs(now.AddDate(0, 0, -30), now).
		WillReturnRows(rows)

	report, err := svc.OverdueCalibrationReadings(context.Background(), 30, now)
	require.NoError(t, err)
	assert.Empty(t, report)
	assert.NoError(t, mock.ExpectationsWereMet())
}
