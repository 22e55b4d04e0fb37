package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, 1000, cfg.Chat.MaxMessageLen)
	assert.Equal(t, 0, cfg.Chat.HistoryLimit)
	assert.Nil(t, cfg.Chat.AllowedOrigins)
	assert.Equal(t, 5, cfg.Upload.MaxSizeMB)
	assert.Equal(t, time.Hour, cfg.GitHub.CacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("CHAT_MAX_MESSAGE_LEN", "500")
	t.Setenv("CHAT_ALLOWED_ORIGINS", "https://example.com, https://*.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 500, cfg.Chat.MaxMessageLen)
	assert.Equal(t, []string{"https://example.com", "https://*.example.com"}, cfg.Chat.AllowedOrigins)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("JWT_ACCESS_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
}

func TestValidate(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := &Config{
			Database: DatabaseConfig{DSN: "postgres://x"},
			Upload:   UploadConfig{MaxSizeMB: 5},
		}
		assert.Error(t, cfg.validate())
	})

	t.Run("missing dsn", func(t *testing.T) {
		cfg := &Config{
			JWT:    JWTConfig{AccessSecret: "a", RefreshSecret: "b"},
			Upload: UploadConfig{MaxSizeMB: 5},
		}
		assert.Error(t, cfg.validate())
	})

	t.Run("valid", func(t *testing.T) {
		cfg := &Config{
			JWT:      JWTConfig{AccessSecret: "a", RefreshSecret: "b"},
			Database: DatabaseConfig{DSN: "postgres://x"},
			Upload:   UploadConfig{MaxSizeMB: 5},
		}
		assert.NoError(t, cfg.validate())
	})
}
