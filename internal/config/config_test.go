package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, "tenant-a", cfg.DefaultTenantID)
	assert.Equal(t, 5*time.Minute, cfg.LookupOTPTTL)
	assert.Equal(t, 5, cfg.LookupOTPMaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.SimulatorInterval)
	assert.Equal(t, 256, cfg.AuditBuffer)
	assert.False(t, cfg.SimulatorEnabled)
	assert.True(t, cfg.Development())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example, https://ops.example ,")
	t.Setenv("LOOKUP_OTP_TTL", "90s")
	t.Setenv("LOOKUP_OTP_MAX_ATTEMPTS", "3")
	t.Setenv("LOOKUP_OTP_DEBUG", "true")
	t.Setenv("TRACKING_SIMULATOR_ENABLED", "true")
	t.Setenv("TRACKING_SIMULATOR_INTERVAL", "garbage")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, []string{"https://shop.example", "https://ops.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.LookupOTPTTL)
	assert.Equal(t, 3, cfg.LookupOTPMaxAttempts)
	assert.False(t, cfg.LookupOTPDebug)
	assert.True(t, cfg.SimulatorEnabled)
	assert.Equal(t, 10*time.Second, cfg.SimulatorInterval)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORE_DRIVER", "cassandra")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}
