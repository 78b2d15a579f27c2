package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/repository"
)

// CalibrationService manages the calibration ledger.
type CalibrationService struct {
	repo   *repository.CalibrationRepository
	logger *zap.Logger
}

// NewCalibrationService returns service instance.
func NewCalibrationService(repo *repository.CalibrationRepository, logger *zap.Logger) *CalibrationService {
	return &CalibrationService{repo: repo, logger: logger}
}

// CreateCalibrationInput carries fields for a new ledger entry.
type CreateCalibrationInput struct {
	ID              string    `json:"record_id"`
	DeviceID        int64     `json:"device_id"`
	CalibrationTime time.Time `json:"calibration_time"`
	CalibratorID    int64     `json:"calibrator_id"`
	Result          string    `json:"calibration_result"`
	Description     string    `json:"calibration_desc"`
}

// Record appends a calibration event and advances the device's
// last-calibration timestamp atomically. A record against an unknown device
// is still kept; registry gaps do not block the ledger.
func (s *CalibrationService) Record(ctx context.Context, input CreateCalibrationInput, now time.Time) (*models.CalibrationRecord, error) {
	if input.DeviceID == 0 {
		return nil, fmt.Errorf("%w: device id required", ErrInvalidArgument)
	}
	if input.CalibrationTime.IsZero() {
		return nil, fmt.Errorf("%w: calibration time required", ErrInvalidArgument)
	}
	if !models.ValidCalibrationResult(input.Result) {
		return nil, fmt.Errorf("%w: unknown calibration result %q", ErrInvalidArgument, input.Result)
	}

	if input.ID == "" {
		input.ID = newEntityID("CR", now)
	} else {
		exists, err := s.repo.Exists(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("calibration record %s: %w", input.ID, ErrConflict)
		}
	}

	rec := &models.CalibrationRecord{
		ID:              input.ID,
		DeviceID:        input.DeviceID,
		CalibrationTime: input.CalibrationTime,
		CalibratorID:    input.CalibratorID,
		Result:          input.Result,
		Description:     input.Description,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("calibration recorded",
		zap.String("record_id", rec.ID),
		zap.Int64("device_id", rec.DeviceID),
		zap.String("result", rec.Result),
	)
	return rec, nil
}

// ListByDevice returns ledger entries for one device, latest first.
func (s *CalibrationService) ListByDevice(ctx context.Context, deviceID int64) ([]models.CalibrationRecord, error) {
	return s.repo.ListByDevice(ctx, deviceID)
}

// Delete removes a ledger entry.
func (s *CalibrationService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("calibration record %s: %w", id, ErrNotFound)
	}
	return err
}
