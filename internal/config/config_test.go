package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("OVERDUE_SWEEP_MINUTES", "")
	t.Setenv("DAILY_RESET_HOUR", "")
	t.Setenv("OVERDUE_NOTIFY_COOLDOWN_HOURS", "")
	t.Setenv("TZ_LOCATION", "UTC")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, "data/snapshot.json", cfg.StorePath)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 0, cfg.DailyResetHour)
	assert.Equal(t, 24*time.Hour, cfg.OverdueCooldown)
	assert.Equal(t, "chorepoints", cfg.JWTIssuer)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_BACKEND", BackendPostgres)

	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/chorepoints")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
}

func TestLoadRedisRequiresURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_BACKEND", BackendRedis)

	_, err := Load()
	require.Error(t, err)

	t.Setenv("REDIS_URL", "redis://localhost:6379")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_BACKEND", "etcd")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadValidatesResetHour(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DAILY_RESET_HOUR", "25")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadParsesDurations(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("OVERDUE_SWEEP_MINUTES", "5")
	t.Setenv("OVERDUE_NOTIFY_COOLDOWN_HOURS", "6")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, 6*time.Hour, cfg.OverdueCooldown)
}

func TestLoadRejectsBadInt(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("OVERDUE_SWEEP_MINUTES", "soon")

	_, err := Load()
	assert.Error(t, err)
}
