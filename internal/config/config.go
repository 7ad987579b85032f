// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds everything the server needs to start.
type Config struct {
	Port string

	StoreBackend string
	StorePath    string
	DatabaseURL  string
	RedisURL     string

	JWTSecret string
	JWTIssuer string

	SweepInterval   time.Duration
	DailyResetHour  int
	OverdueCooldown time.Duration
	Location        *time.Location
}

// Load reads the environment. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8090"),
		StoreBackend: getEnv("STORE_BACKEND", BackendFile),
		StorePath:    getEnv("STORE_PATH", "data/snapshot.json"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTIssuer:    getEnv("JWT_ISSUER", "chorepoints"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	switch cfg.StoreBackend {
	case BackendFile:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis store")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	sweepMinutes, err := getEnvInt("OVERDUE_SWEEP_MINUTES", 1)
	if err != nil {
		return nil, err
	}
	cfg.SweepInterval = time.Duration(sweepMinutes) * time.Minute

	cfg.DailyResetHour, err = getEnvInt("DAILY_RESET_HOUR", 0)
	if err != nil {
		return nil, err
	}
	if cfg.DailyResetHour < 0 || cfg.DailyResetHour > 23 {
		return nil, fmt.Errorf("DAILY_RESET_HOUR must be 0-23, got %d", cfg.DailyResetHour)
	}

	cooldownHours, err := getEnvInt("OVERDUE_NOTIFY_COOLDOWN_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cfg.OverdueCooldown = time.Duration(cooldownHours) * time.Hour

	tz := getEnv("TZ_LOCATION", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_LOCATION %q: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
