package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("APP_ENV", "")
	t.Setenv("PASSWORD_RESET_EXPOSE_SECRETS", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_TTL", "")
	t.Setenv("PASSWORD_RESET_TTL", "")
	t.Setenv("PASSWORD_RESET_OTP_LENGTH", "")
	t.Setenv("ADMIN_EMAIL", " Admin@Glamoure.io ")

	cfg := Load()
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.PasswordResetTTL)
	assert.Equal(t, 15*time.Minute, cfg.PasswordResetVerifiedTTL)
	assert.Equal(t, 6, cfg.PasswordResetOTPLength)
	assert.Equal(t, "admin@glamoure.io", cfg.AdminEmail)
	assert.False(t, cfg.PasswordResetExposeSecrets)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PASSWORD_RESET_TTL", "30m")
	t.Setenv("NOTIFY_TIMEOUT", "not-a-duration")
	t.Setenv("ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("PASSWORD_RESET_EXPOSE_SECRETS", "true")

	cfg := Load()
	assert.Equal(t, 30*time.Minute, cfg.PasswordResetTTL)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.True(t, cfg.PasswordResetExposeSecrets)
}

func TestLoadRefusesExposedSecretsInProduction(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("PASSWORD_RESET_EXPOSE_SECRETS", "true")

	require.Panics(t, func() { Load() })
}

func TestLoadRequiresDatabaseForPostgres(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	require.Panics(t, func() { Load() })
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "sqlite")

	require.Panics(t, func() { Load() })
}
