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

func setupIndicatorService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *IndicatorService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewIndicatorService(repository.NewIndicatorRepository(db), zap.NewNop())
	return db, mock, svc
}

func TestIndicatorCreateDuplicate(t *testing.T) {
	db, mock, svc := setupIndicatorService(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "unit", "upper_threshold", "lower_threshold", "frequency", "created_at", "updated_at"}).
		AddRow("PM25", "PM2.5", "μg/m³", 75.0, 0.0, "hourly", now, now)

	mock.ExpectQuery(`FROM indicators`).
		WithArgs("PM25").
		WillReturnRows(rows)

	_, err := svc.Create(context.Background(), CreateIndicatorInput{
		ID:             "PM25",
		Name:           "PM2.5",
		Unit:           "μg/m³",
		UpperThreshold: 75,
		Frequency:      "hourly",
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIndicatorCreateRejectsInvertedThresholds(t *testing.T) {
	db, _, svc := setupIndicatorService(t)
	defer db.Close()

	_, err := svc.Create(context.Background(), CreateIndicatorInput{
		ID:             "PM25",
		Name:           "PM2.5",
		UpperThreshold: 0,
		LowerThreshold: 75,
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestIndicatorGetNotFound(t *testing.T) {
	db, mock, svc := setupIndicatorService(t)
	defer db.Close()

	mock.ExpectQuery(`FROM indicators`).
		WithArgs("GHOST").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Get(context.Background(), "GHOST")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
