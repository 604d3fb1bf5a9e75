package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	require.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	require.Equal(t, 12, cfg.Auth.BcryptCost)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_MINUTES", "60")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL())
	require.Equal(t, time.Hour, cfg.Auth.RefreshTokenTTL())
	require.Equal(t, "9090", cfg.App.Port)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	t.Setenv("SOME_BAD_INT", "not-a-number")
	t.Setenv("SOME_BOOL", "true")

	require.Equal(t, 42, getEnvAsInt("SOME_INT", 7))
	require.Equal(t, 7, getEnvAsInt("SOME_BAD_INT", 7))
	require.Equal(t, 7, getEnvAsInt("SOME_MISSING_INT", 7))
	require.True(t, getEnvAsBool("SOME_BOOL", false))
	require.Equal(t, "fallback", getEnv("SOME_MISSING_STR", "fallback"))
}
