package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BOOKING_TIMEZONE", "")
	t.Setenv("BOOKING_CHECKIN_STEP_MINUTES", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("PAYMENT_WEBHOOK_API_KEY", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Booking.CheckInStepMinutes)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Booking.Location.String())
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Empty(t, cfg.Redis.URL)
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	setBaseEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  port: "9090"
booking:
  timezone: UTC
  checkin_step_minutes: 15
jwt:
  ttl: 2h
cors:
  allowed_origins: ["https://homestay.example"]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("BOOKING_CHECKIN_STEP_MINUTES", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, time.UTC, cfg.Booking.Location)
	assert.Equal(t, 60, cfg.Booking.CheckInStepMinutes, "env wins over file")
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, []string{"https://homestay.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database", env: map[string]string{"DATABASE_URL": ""}},
		{name: "bad step", env: map[string]string{"BOOKING_CHECKIN_STEP_MINUTES": "0"}},
		{name: "non numeric step", env: map[string]string{"BOOKING_CHECKIN_STEP_MINUTES": "half"}},
		{name: "bad timezone", env: map[string]string{"BOOKING_TIMEZONE": "Mars/Olympus"}},
		{name: "default secret in prod", env: map[string]string{"APP_ENV": "production", "PAYMENT_WEBHOOK_API_KEY": "hook-key"}},
		{name: "webhook key missing in prod", env: map[string]string{"APP_ENV": "production", "JWT_SECRET": "a-real-secret-value"}},
		{name: "blank webhook key in release", env: map[string]string{"APP_ENV": "release", "JWT_SECRET": "a-real-secret-value", "PAYMENT_WEBHOOK_API_KEY": "   "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProductionWithSecrets(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret-value")
	t.Setenv("PAYMENT_WEBHOOK_API_KEY", "hook-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "hook-key", cfg.Payment.WebhookAPIKey)
}

func TestLoad_CORSList(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
