package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/repository"
)

// ReadingService handles reading ingestion and the audit workflow.
type ReadingService struct {
	repo   *repository.ReadingRepository
	logger *zap.Logger
}

// NewReadingService returns service instance.
func NewReadingService(repo *repository.ReadingRepository, logger *zap.Logger) *ReadingService {
	return &ReadingService{repo: repo, logger: logger}
}

// CreateReadingInput carries fields for a submitted reading.
type CreateReadingInput struct {
	ID          string    `json:"data_id"`
	IndicatorID string    `json:"index_id"`
	DeviceID    int64     `json:"device_id"`
	AreaID      int64     `json:"area_id"`
	CollectTime time.Time `json:"collect_time"`
	Value       float64   `json:"monitor_value"`
	Quality     string    `json:"data_quality"`
}

// Create ingests a reading. Classification against the indicator thresholds
// happens inside the insert transaction; every new reading starts unaudited.
func (s *ReadingService) Create(ctx context.Context, input CreateReadingInput, now time.Time) (*models.Reading, error) {
	if strings.TrimSpace(input.IndicatorID) == "" {
		return nil, fmt.Errorf("%w: index id required", ErrInvalidArgument)
	}
	if input.DeviceID == 0 {
		return nil, fmt.Errorf("%w: device id required", ErrInvalidArgument)
	}
	if input.CollectTime.IsZero() {
		return nil, fmt.Errorf("%w: collect time required", ErrInvalidArgument)
	}
	if input.Quality == "" {
		input.Quality = models.QualityFair
	}
	if !models.ValidQuality(input.Quality) {
		return nil, fmt.Errorf("%w: unknown data quality %q", ErrInvalidArgument, input.Quality)
	}

	if input.ID == "" {
		input.ID = newEntityID("ED", now)
	} else {
		exists, err := s.repo.Exists(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("reading %s: %w", input.ID, ErrConflict)
		}
	}

	reading := &models.Reading{
		ID:          input.ID,
		IndicatorID: input.IndicatorID,
		DeviceID:    input.DeviceID,
		AreaID:      input.AreaID,
		CollectTime: input.CollectTime,
		Value:       input.Value,
		Quality:     input.Quality,
		AuditStatus: models.AuditStatusUnaudited,
	}
	if err := s.repo.Create(ctx, reading); err != nil {
		return nil, err
	}

	s.logger.Info("reading ingested",
		zap.String("data_id", reading.ID),
		zap.String("index_id", reading.IndicatorID),
		zap.Int64("device_id", reading.DeviceID),
		zap.Bool("is_abnormal", reading.IsAbnormal),
	)
	return reading, nil
}

// Get returns one reading.
func (s *ReadingService) Get(ctx context.Context, id string) (*models.Reading, error) {
	reading, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reading %s: %w", id, ErrNotFound)
	}
	return reading, err
}

// ListByDevice returns a device's readings newest-first within the optional
// time bounds.
func (s *ReadingService) ListByDevice(ctx context.Context, deviceID int64, start, end *time.Time) ([]models.Reading, error) {
	return s.repo.ListByDevice(ctx, deviceID, start, end)
}

// ListAbnormalByArea returns abnormal readings of an area newest-first
// within the optional time bounds.
func (s *ReadingService) ListAbnormalByArea(ctx context.Context, areaID int64, start, end *time.Time) ([]models.Reading, error) {
	return s.repo.ListAbnormalByArea(ctx, areaID, start, end)
}

// SetAuditStatus moves a reading to a new disposition. Any enumerated status
// may be set at any time; the machine is not one-way. A supplied reason
// replaces the stored abnormal reason, an omitted one preserves it, and the
// abnormal flag is never recomputed.
func (s *ReadingService) SetAuditStatus(ctx context.Context, id, status string, reason *string) (*models.Reading, error) {
	if !models.ValidAuditStatus(status) {
		return nil, fmt.Errorf("%w: unknown audit status %q", ErrInvalidArgument, status)
	}
	reading, err := s.repo.SetAuditStatus(ctx, id, status, reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reading %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("reading audited", zap.String("data_id", id), zap.String("audit_status", status))
	return reading, nil
}

// Delete removes a reading.
func (s *ReadingService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reading %s: %w", id, ErrNotFound)
	}
	return err
}
