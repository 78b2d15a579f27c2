package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"parkmonitor/internal/cache"
	"parkmonitor/internal/models"
	"parkmonitor/internal/repository"
)

// ReportService computes the derived reporting views. Every report takes an
// explicit evaluation instant so results stay deterministic under test.
type ReportService struct {
	repo   *repository.ReportRepository
	cache  *cache.QualityRateCache
	logger *zap.Logger
}

// NewReportService returns service instance; cache may be nil.
func NewReportService(repo *repository.ReportRepository, cache *cache.QualityRateCache, logger *zap.Logger) *ReportService {
	return &ReportService{repo: repo, cache: cache, logger: logger}
}

// DeviceQualityRate reports per-device reading counts and the share of
// qualified grades over the trailing window, sorted by rate descending.
// Devices without readings appear with a 0.0 rate.
func (s *ReportService) DeviceQualityRate(ctx context.Context, days int, now time.Time) ([]models.DeviceQualityRate, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if report, ok := s.cache.Get(ctx, days); ok {
			return report, nil
		}
	}

	rows, err := s.repo.DeviceQualityRate(ctx, windowStart(now, days))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].TotalCount > 0 {
			rate := float64(rows[i].QualifiedCount) * 100 / float64(rows[i].TotalCount)
			rows[i].QualifiedRate = math.Round(rate*100) / 100
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].QualifiedRate > rows[j].QualifiedRate
	})

	if s.cache != nil {
		s.cache.Save(ctx, days, rows)
	}
	return rows, nil
}

// OverdueCalibrationReadings cross-references windowed readings with
// strictly overdue devices.
func (s *ReportService) OverdueCalibrationReadings(ctx context.Context, days int, now time.Time) ([]models.OverdueCalibrationReading, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}
	return s.repo.OverdueCalibrationReadings(ctx, windowStart(now, days), now)
}

// CoreAreaAbnormal reports abnormal readings of one indicator inside
// core-protection areas. An empty result is a valid outcome, including for
// indicator names nobody registered.
func (s *ReportService) CoreAreaAbnormal(ctx context.Context, indicatorName string, days int, now time.Time) ([]models.CoreAreaAbnormalReading, error) {
	if indicatorName == "" {
		return nil, fmt.Errorf("%w: indicator name required", ErrInvalidArgument)
	}
	if err := validateWindow(days); err != nil {
		return nil, err
	}
	return s.repo.CoreAreaAbnormal(ctx, indicatorName, windowStart(now, days))
}

// AreaStatistics aggregates an area's readings over the trailing window.
func (s *ReportService) AreaStatistics(ctx context.Context, areaID int64, days int, now time.Time) (*models.AreaStatistics, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}
	return s.repo.AreaStatistics(ctx, areaID, windowStart(now, days), now)
}

func validateWindow(days int) error {
	if days < 1 || days > 365 {
		return fmt.Errorf("%w: days must be between 1 and 365", ErrInvalidArgument)
	}
	return nil
}

func windowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}
