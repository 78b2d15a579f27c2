package app

import (
	"context"
	"database/sql"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"parkmonitor/internal/cache"
	"parkmonitor/internal/config"
	httpserver "parkmonitor/internal/http"
	"parkmonitor/internal/http/handlers"
	"parkmonitor/internal/http/middleware"
	"parkmonitor/internal/repository"
	"parkmonitor/internal/service"
	"parkmonitor/libs/db"
	"parkmonitor/libs/redis"
)

// App wires monitoring service dependencies.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New constructs application components. Redis is optional: without an
// address the quality-rate report simply runs uncached.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var redisClient *goredis.Client
	var qualityCache *cache.QualityRateCache
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		ttl := time.Duration(cfg.Redis.ReportTTLSecs) * time.Second
		qualityCache = cache.NewQualityRateCache(redisClient, ttl)
	}

	indicatorService := service.NewIndicatorService(repository.NewIndicatorRepository(sqlDB), logger)
	deviceService := service.NewDeviceService(repository.NewDeviceRepository(sqlDB), logger)
	readingService := service.NewReadingService(repository.NewReadingRepository(sqlDB), logger)
	calibrationService := service.NewCalibrationService(repository.NewCalibrationRepository(sqlDB), logger)
	reportService := service.NewReportService(repository.NewReportRepository(sqlDB), qualityCache, logger)

	routes := httpserver.Routes{
		Indicators:   handlers.NewIndicatorHandler(indicatorService, logger),
		Devices:      handlers.NewDeviceHandler(deviceService, logger),
		Readings:     handlers.NewReadingHandler(readingService, logger),
		Calibrations: handlers.NewCalibrationHandler(calibrationService, logger),
		Reports:      handlers.NewReportHandler(reportService, logger),
		Health:       handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger, middleware.Authenticate(cfg.Auth.JWTSecret))

	return &App{
		server: server,
		db:     sqlDB,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts serving HTTP requests.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
