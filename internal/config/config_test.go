package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-sufficiently-long-test-secret"

func TestLoad_MissingSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET is required")
}

func TestLoad_ShortSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 16 characters")
}

func TestLoad_ProductionRequiresLongerSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "only-twenty-chars!!!")
	t.Setenv("ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionExpiry)
	assert.Equal(t, 24*time.Hour, cfg.Auth.VerificationTTL)
	assert.Equal(t, time.Hour, cfg.Auth.ResetTTL)
	assert.Equal(t, "log", cfg.Email.Mode)
}

func TestLoad_TTLOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("VERIFICATION_TOKEN_TTL", "48h")
	t.Setenv("RESET_TOKEN_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, cfg.Auth.VerificationTTL)
	assert.Equal(t, 30*time.Minute, cfg.Auth.ResetTTL)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("RESET_TOKEN_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Auth.ResetTTL)
}

func TestLoad_InvalidEmailMode(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("EMAIL_MODE", "smtp")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMAIL_MODE")
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
}

func TestValidateSessionSecret_WeakValues(t *testing.T) {
	for _, weak := range []string{"changeme", "password", "secret"} {
		assert.Error(t, validateSessionSecret(weak, "development"), weak)
	}
}
