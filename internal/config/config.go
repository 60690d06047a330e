package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDatabaseURL   = "renthub.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTTTL        = "24h"
	defaultLockWait      = "2s"
	defaultFeePercent    = "10"
	defaultPort          = "8080"
	defaultSweepSchedule = "@hourly"
)

type Config struct {
	AppEnv             string
	DatabaseURL        string
	JWTSecret          string
	JWTTTL             time.Duration
	LockWait           time.Duration
	PlatformFeePercent float64
	SweepSchedule      string
	Port               string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.SweepSchedule = strings.TrimSpace(getEnv("SWEEP_SCHEDULE", defaultSweepSchedule))
	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.LockWait, err = parseDurationEnv("LOCK_WAIT", defaultLockWait)
	if err != nil {
		return nil, err
	}

	feeStr := strings.TrimSpace(getEnv("PLATFORM_FEE_PERCENT", defaultFeePercent))
	cfg.PlatformFeePercent, err = strconv.ParseFloat(feeStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PLATFORM_FEE_PERCENT value %q: %w", feeStr, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.LockWait <= 0 {
		return fmt.Errorf("LOCK_WAIT must be > 0")
	}
	if cfg.PlatformFeePercent < 0 || cfg.PlatformFeePercent > 100 {
		return fmt.Errorf("PLATFORM_FEE_PERCENT must be between 0 and 100")
	}
	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
