package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"parkmonitor/internal/models"
	"parkmonitor/internal/repository"
)

// IndicatorService manages indicator definitions.
type IndicatorService struct {
	repo   *repository.IndicatorRepository
	logger *zap.Logger
}

// NewIndicatorService returns service instance.
func NewIndicatorService(repo *repository.IndicatorRepository, logger *zap.Logger) *IndicatorService {
	return &IndicatorService{repo: repo, logger: logger}
}

// CreateIndicatorInput carries fields for a new indicator.
type CreateIndicatorInput struct {
	ID             string  `json:"index_id"`
	Name           string  `json:"index_name"`
	Unit           string  `json:"unit"`
	UpperThreshold float64 `json:"upper_threshold"`
	LowerThreshold float64 `json:"lower_threshold"`
	Frequency      string  `json:"monitor_frequency"`
}

// Create registers a new indicator, rejecting duplicates.
func (s *IndicatorService) Create(ctx context.Context, input CreateIndicatorInput) (*models.Indicator, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, fmt.Errorf("%w: index id required", ErrInvalidArgument)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: index name required", ErrInvalidArgument)
	}
	if input.UpperThreshold < input.LowerThreshold {
		return nil, fmt.Errorf("%w: upper threshold below lower threshold", ErrInvalidArgument)
	}

	if _, err := s.repo.GetByID(ctx, input.ID); err == nil {
		return nil, fmt.Errorf("indicator %s: %w", input.ID, ErrConflict)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	ind := &models.Indicator{
		ID:             input.ID,
		Name:           input.Name,
		Unit:           input.Unit,
		UpperThreshold: input.UpperThreshold,
		LowerThreshold: input.LowerThreshold,
		Frequency:      input.Frequency,
	}
	if err := s.repo.Create(ctx, ind); err != nil {
		return nil, err
	}

	s.logger.Info("indicator created",
		zap.String("index_id", ind.ID),
		zap.Float64("upper_threshold", ind.UpperThreshold),
		zap.Float64("lower_threshold", ind.LowerThreshold),
	)
	return ind, nil
}

// Get returns one indicator.
func (s *IndicatorService) Get(ctx context.Context, id string) (*models.Indicator, error) {
	ind, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("indicator %s: %w", id, ErrNotFound)
	}
	return ind, err
}

// List returns indicators newest-first.
func (s *IndicatorService) List(ctx context.Context, offset, limit int) ([]models.Indicator, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

// Update applies a partial update. Threshold changes only affect readings
// created afterwards; nothing is reclassified.
func (s *IndicatorService) Update(ctx context.Context, id string, upd models.IndicatorUpdate) (*models.Indicator, error) {
	ind, err := s.repo.Update(ctx, id, upd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("indicator %s: %w", id, ErrNotFound)
	}
	return ind, err
}

// Delete removes an indicator. Referential protection for existing readings
// is the caller's duty.
func (s *IndicatorService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("indicator %s: %w", id, ErrNotFound)
	}
	return err
}
