package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "DATABASE_DSN", "BODY_LIMIT_BYTES", "BODY_LIMIT_MB", "LOG_LEVEL", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_SECONDS"} {
		t.Setenv(k, "")
	}
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 4*1024*1024, cfg.BodyLimitBytes)
	assert.Equal(t, 60, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("BODY_LIMIT_BYTES", "2048")
	t.Setenv("BODY_LIMIT_MB", "9")
	t.Setenv("RATE_LIMIT_MAX", "oops")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "redis", cfg.StoreDriver)
	assert.Equal(t, 2048, cfg.BodyLimitBytes)
	assert.Equal(t, 60, cfg.RateLimitMax, "unparseable ints fall back to the default")
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnvRejectsUnknownValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "STORE_DRIVER")

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "loud")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "LOG_LEVEL")
}
