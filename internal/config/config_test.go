package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ENV", "HOST", "PORT", "POSTGRES_URI", "REDIS_URI", "ALLOWED_ORIGINS",
		"FRONTEND_URL", "FRONTEND_URL_2", "LOG_LEVEL", "TIMEZONE", "SESSION_TTL",
		"MAX_UPLOAD_MB", "BLOB_BACKEND", "CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY",
		"CLOUDINARY_API_SECRET", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "TRUST_PROXY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.AllowedHost)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "Asia/Jakarta", cfg.Timezone)
	assert.Equal(t, BlobBackendNone, cfg.BlobBackend)
	assert.Equal(t, "laporan", cfg.S3Bucket)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", " Production ")
	t.Setenv("HOST", "https://api.laporan.example:443/v1")
	t.Setenv("ALLOWED_ORIGINS", "https://laporan.example, https://www.laporan.example ,")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("S3_ACCESS_KEY", "minio")
	t.Setenv("S3_SECRET_KEY", "minio123")
	t.Setenv("TRUST_PROXY", "true")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "api.laporan.example", cfg.AllowedHost)
	assert.Equal(t, []string{"https://laporan.example", "https://www.laporan.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, BlobBackendS3, cfg.BlobBackend)
	assert.True(t, cfg.TrustProxy)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("MAX_UPLOAD_MB", "-3")

	cfg := Load()

	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestDetectBlobBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "k")
	t.Setenv("CLOUDINARY_API_SECRET", "s")
	t.Setenv("S3_ACCESS_KEY", "a")
	t.Setenv("S3_SECRET_KEY", "b")
	assert.Equal(t, BlobBackendCloudinary, detectBlobBackend())

	t.Setenv("BLOB_BACKEND", "S3")
	assert.Equal(t, BlobBackendS3, detectBlobBackend())
}

func TestLocation_Fallback(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	loc := cfg.Location()
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*3600, offset)
}
