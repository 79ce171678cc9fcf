package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BlobBackendNone       = ""
	BlobBackendCloudinary = "cloudinary"
	BlobBackendS3         = "s3"
)

type Config struct {
	PostgresURI    string
	RedisURI       string
	Port           string
	Environment    string   // ENV: production, development, etc.
	Host           string   // Raw HOST env (e.g. https://api.laporan.example)
	AllowedHost    string   // Hostname only, set in production for the host check
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	LogLevel       string
	Timezone       string // IANA name used to decide what "today" is
	SessionTTL     time.Duration
	MaxUploadBytes int64
	TrustProxy     bool // take the client IP from X-Forwarded-For / X-Real-IP

	BlobBackend         string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	S3Region            string
	S3Endpoint          string
	S3AccessKey         string
	S3SecretKey         string
	S3Bucket            string
	S3PublicURL         string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// host check is skipped outside production
	var allowedHost string
	if env == "production" {
		allowedHost = bareHost(host)
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" && !containsOrigin(allowedOrigins, u) {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		PostgresURI:    getEnv("POSTGRES_URI", "postgres://localhost:5432/laporan?sslmode=disable"),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		Host:           host,
		AllowedHost:    allowedHost,
		AllowedOrigins: allowedOrigins,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("TIMEZONE", "Asia/Jakarta"),
		SessionTTL:     getDuration("SESSION_TTL", 7*24*time.Hour),
		MaxUploadBytes: getInt64("MAX_UPLOAD_MB", 10) << 20,
		TrustProxy:     getBool("TRUST_PROXY", false),

		BlobBackend:         detectBlobBackend(),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		S3Region:            getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:          getEnv("S3_ENDPOINT", ""),
		S3AccessKey:         getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:         getEnv("S3_SECRET_KEY", ""),
		S3Bucket:            getEnv("S3_BUCKET", "laporan"),
		S3PublicURL:         getEnv("S3_PUBLIC_URL", ""),
	}
}

// detectBlobBackend honours BLOB_BACKEND and otherwise picks whichever
// provider has credentials, Cloudinary first.
func detectBlobBackend() string {
	switch b := strings.ToLower(strings.TrimSpace(getEnv("BLOB_BACKEND", ""))); b {
	case BlobBackendCloudinary, BlobBackendS3:
		return b
	}
	if getEnv("CLOUDINARY_CLOUD_NAME", "") != "" && getEnv("CLOUDINARY_API_KEY", "") != "" && getEnv("CLOUDINARY_API_SECRET", "") != "" {
		return BlobBackendCloudinary
	}
	if getEnv("S3_ACCESS_KEY", "") != "" && getEnv("S3_SECRET_KEY", "") != "" {
		return BlobBackendS3
	}
	return BlobBackendNone
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// Location resolves Timezone, falling back to a fixed UTC+7 zone when the
// tz database is missing from the host.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func bareHost(host string) string {
	for _, prefix := range []string{"https://", "http://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return strings.TrimSpace(host)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if n, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return b
	}
	return defaultValue
}
