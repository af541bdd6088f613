package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "PORT", "APP_ENV", "MAX_UPLOAD_BYTES", "UPLOAD_TIMEOUT",
		"STORAGE_ENDPOINT", "STORAGE_BUCKET", "STORAGE_USE_SSL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.UploadTimeout)
	assert.Equal(t, "images", cfg.StorageBucket)
	assert.False(t, cfg.StorageUseSSL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("UPLOAD_TIMEOUT", "10s")
	t.Setenv("STORAGE_USE_SSL", "true")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, 10*time.Second, cfg.UploadTimeout)
	assert.True(t, cfg.StorageUseSSL)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("UPLOAD_TIMEOUT", "-5s")

	cfg := Load()

	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.UploadTimeout)
}
