package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"PORT", "POSTGRES_DSN", "JWT_SECRET", "JWT_ACCESS_TTL_MINUTES",
	"BOOTSTRAP_ADMIN_LOGIN", "BOOTSTRAP_ADMIN_PASSWORD",
	"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED", "RUN_MIGRATIONS",
	"MEDIA_ROOT", "MEDIA_URL",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestLoadConfigMemoryDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.MemoryMode())
	assert.True(t, cfg.GeneratedSecret)
	assert.Len(t, cfg.JWTSecret, 64)
	assert.True(t, cfg.DevBootstrap)
	assert.Equal(t, "admin", cfg.BootstrapAdminLogin)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, "localhost:7233", cfg.TemporalAddress)
	assert.Equal(t, "default", cfg.TemporalNamespace)
	assert.False(t, cfg.TemporalDisabled)
	assert.Equal(t, "./media", cfg.MediaRoot)
	assert.Equal(t, "/media", cfg.MediaURL)
}

func TestLoadConfigMediaURL(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MEDIA_URL", "uploads/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/uploads", cfg.MediaURL)

	t.Setenv("MEDIA_URL", "/")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigPostgres(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DSN", "postgres://app@db/backoffice")
	t.Setenv("JWT_SECRET", "0123456789abcdef-secret")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "15")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("RUN_MIGRATIONS", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.False(t, cfg.MemoryMode())
	assert.False(t, cfg.GeneratedSecret)
	assert.False(t, cfg.DevBootstrap)
	assert.Empty(t, cfg.BootstrapAdminLogin)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.True(t, cfg.TemporalDisabled)
	assert.True(t, cfg.RunMigrations)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"ttl not a number":    {"JWT_ACCESS_TTL_MINUTES": "soon"},
		"ttl not positive":    {"JWT_ACCESS_TTL_MINUTES": "0"},
		"port not numeric":    {"PORT": "http"},
		"short secret":        {"JWT_SECRET": "short"},
		"secret missing":      {"POSTGRES_DSN": "postgres://db"},
		"half bootstrap":      {"BOOTSTRAP_ADMIN_LOGIN": "root"},
		"half bootstrap pass": {"BOOTSTRAP_ADMIN_PASSWORD": "pw"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
