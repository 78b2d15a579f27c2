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

// DeviceService manages the device registry and the calibration-due query.
type DeviceService struct {
	repo   *repository.DeviceRepository
	logger *zap.Logger
}

// NewDeviceService returns service instance.
func NewDeviceService(repo *repository.DeviceRepository, logger *zap.Logger) *DeviceService {
	return &DeviceService{repo: repo, logger: logger}
}

// CreateDeviceInput carries fields for a new device.
type CreateDeviceInput struct {
	Type                string     `json:"type"`
	AreaID              *int64     `json:"deployment_area_id"`
	InstallTime         *time.Time `json:"install_time"`
	CalibrationCycle    int        `json:"calibration_cycle"`
	LastCalibrationTime *time.Time `json:"last_calibration_time"`
	Status              string     `json:"status"`
	Protocol            string     `json:"communication_protocol"`
	Latitude            *float64   `json:"latitude"`
	Longitude           *float64   `json:"longitude"`
}

// Create registers a new device, applying registry defaults.
func (s *DeviceService) Create(ctx context.Context, input CreateDeviceInput, now time.Time) (*models.Device, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, fmt.Errorf("%w: device type required", ErrInvalidArgument)
	}
	if input.CalibrationCycle < 0 {
		return nil, fmt.Errorf("%w: calibration cycle must be positive", ErrInvalidArgument)
	}
	if input.CalibrationCycle == 0 {
		input.CalibrationCycle = models.DefaultCalibrationCycle
	}
	if input.Status == "" {
		input.Status = models.DeviceStatusNormal
	}
	if !models.ValidDeviceStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown device status %q", ErrInvalidArgument, input.Status)
	}

	installTime := now
	if input.InstallTime != nil {
		installTime = *input.InstallTime
	}

	device := &models.Device{
		Type:                input.Type,
		AreaID:              input.AreaID,
		InstallTime:         installTime,
		CalibrationCycle:    input.CalibrationCycle,
		LastCalibrationTime: input.LastCalibrationTime,
		Status:              input.Status,
		Protocol:            input.Protocol,
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
	}
	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}

	s.logger.Info("device created",
		zap.Int64("device_id", device.ID),
		zap.String("type", device.Type),
		zap.Int("calibration_cycle", device.CalibrationCycle),
	)
	return device, nil
}

// Get returns one device.
func (s *DeviceService) Get(ctx context.Context, id int64) (*models.Device, error) {
	device, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("device %d: %w", id, ErrNotFound)
	}
	return device, err
}

// List returns all devices, or only those deployed in areaID when non-nil.
func (s *DeviceService) List(ctx context.Context, areaID *int64) ([]models.Device, error) {
	if areaID != nil {
		return s.repo.ListByArea(ctx, *areaID)
	}
	return s.repo.ListAll(ctx)
}

// ListNeedingCalibration returns devices due for calibration at the given
// instant: never calibrated, or at least a full cycle of whole days has
// elapsed. Offline devices are excluded.
func (s *DeviceService) ListNeedingCalibration(ctx context.Context, now time.Time) ([]models.Device, error) {
	return s.repo.ListNeedingCalibration(ctx, now)
}

// UpdateStatus sets the operational status, rejecting values outside the
// enumerated set.
func (s *DeviceService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Device, error) {
	if !models.ValidDeviceStatus(status) {
		return nil, fmt.Errorf("%w: unknown device status %q", ErrInvalidArgument, status)
	}
	device, err := s.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("device %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("device status updated", zap.Int64("device_id", id), zap.String("status", status))
	return device, nil
}

// Update applies a partial update.
func (s *DeviceService) Update(ctx context.Context, id int64, upd models.DeviceUpdate) (*models.Device, error) {
	if upd.Status != nil && !models.ValidDeviceStatus(*upd.Status) {
		return nil, fmt.Errorf("%w: unknown device status %q", ErrInvalidArgument, *upd.Status)
	}
	if upd.CalibrationCycle != nil && *upd.CalibrationCycle <= 0 {
		return nil, fmt.Errorf("%w: calibration cycle must be positive", ErrInvalidArgument)
	}
	device, err := s.repo.Update(ctx, id, upd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("device %d: %w", id, ErrNotFound)
	}
	return device, err
}

// Delete removes a device.
func (s *DeviceService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("device %d: %w", id, ErrNotFound)
	}
	return err
}
