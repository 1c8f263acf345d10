package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8000, cfg.ServerPort)
	require.Equal(t, "./triply.db", cfg.DatabasePath)
	require.Equal(t, "./uploads", cfg.UploadsPath)
	require.Equal(t, 72*time.Hour, cfg.TokenTTL)
	require.Equal(t, "0 3 * * *", cfg.SweepSchedule)
	require.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("TOKEN_TTL_HOURS", "1")
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9001, cfg.ServerPort)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, "s3cret", cfg.TokenSecret)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_BadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	_, err := Load()
	require.Error(t, err)
}
