package config

import (
	"errors"
	"fmt"
	"strings"

	libconfig "parkmonitor/libs/config"
)

// Config defines the monitoring service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"MONITOR_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"MONITOR_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr          string `yaml:"addr" env:"MONITOR_REDIS_ADDR"`
		Password      string `yaml:"password" env:"MONITOR_REDIS_PASSWORD"`
		ReportTTLSecs int    `yaml:"report_ttl_seconds" env:"MONITOR_REPORT_TTL_SECONDS"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret" env:"MONITOR_JWT_SECRET"`
	} `yaml:"auth"`
}

// Load configuration using the shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8086"
	cfg.Redis.ReportTTLSecs = 60

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8086"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
