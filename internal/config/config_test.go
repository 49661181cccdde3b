package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SESSION_LIFETIME", "")
	t.Setenv("ORDER_TIMEZONE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionLifetime)
	assert.Len(t, cfg.SessionKey, 16)
	assert.Equal(t, "Asia/Kolkata", cfg.OrderTimeZone)
}

func TestLoad_FromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "KAFKA_BROKERS=k1:9092, k2:9092\nREDIS_DB=2\nLOG_LEVEL=warn\nSESSION_KEY=a-long-enough-session-key\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	for _, key := range []string{"KAFKA_BROKERS", "REDIS_DB", "LOG_LEVEL", "SESSION_KEY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, []byte("a-long-enough-session-key"), cfg.SessionKey)
}

func TestLoad_RejectsShortSessionKey(t *testing.T) {
	t.Setenv("SESSION_KEY", "short")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
