package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PORT", "DB_NAME", "MONGO_URI", "UPLOAD_MAX_BYTES", "UPLOAD_ALLOWED_TYPES", "AUTH_ENABLED", "CORS_ALLOW_ORIGINS", "TOKEN_TTL_HOURS", "UPLOAD_DIR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, "boutique", cfg.DB.Database)
	assert.False(t, cfg.Mongo.Enabled())
	assert.Equal(t, "data/uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSize)
	assert.Equal(t, []string{"jpg", "jpeg", "png", "gif"}, cfg.Upload.AllowedTypes)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("UPLOAD_ALLOWED_TYPES", "JPG, png")
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("AUTO_MIGRATE", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3307, cfg.DB.Port)
	assert.True(t, cfg.Mongo.Enabled())
	assert.Equal(t, []string{"jpg", "png"}, cfg.Upload.AllowedTypes)
	assert.False(t, cfg.Auth.Enabled)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
