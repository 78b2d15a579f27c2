package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/repository"
)

func setupCalibrationService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *CalibrationService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewCalibrationService(repository.NewCalibrationRepository(db), zap.NewNop())
	return db, mock, svc
}

func TestCalibrationRecordGeneratesID(t *testing.T) {
	db, mock, svc := setupCalibrationService(t)
	defer db.Close()

	calTime := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO calibration_records`).
		WithArgs(sqlmock.AnyArg(), int64(2), calTime, int64(7), models.CalibrationPass, "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`UPDATE devices SET last_calibration_time`).
		WithArgs(int64(2), calTime).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, err := svc.Record(context.Background(), CreateCalibrationInput{
		DeviceID:        2,
		CalibrationTime: calTime,
		CalibratorID:    7,
		Result:          models.CalibrationPass,
	}, now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rec.ID, "CR_"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalibrationRecordRejectsBadInput(t *testing.T) {
	db, _, svc := setupCalibrationService(t)
	defer db.Close()

	now := time.Now()

	_, err := svc.Record(context.Background(), CreateCalibrationInput{
		CalibrationTime: now, Result: models.CalibrationPass,
	}, now)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Record(context.Background(), CreateCalibrationInput{
		DeviceID: 2, Result: models.CalibrationPass,
	}, now)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Record(context.Background(), CreateCalibrationInput{
		DeviceID: 2, CalibrationTime: now, Result: "partial",
	}, now)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCalibrationRecordDuplicateID(t *testing.T) {
	db, mock, svc := setupCalibrationService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("CR1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.Record(context.Background(), CreateCalibrationInput{
		ID:              "CR1",
		DeviceID:        2,
		CalibrationTime: time.Now(),
		Result:          models.CalibrationPass,
	}, time.Now())
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
