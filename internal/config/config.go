// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMinio = "minio"
	DriverS3    = "s3"
)

// Config holds all runtime configuration for the service.
type Config struct {
	DatabaseURL  string
	Port         string
	AppEnv       string
	AllowOrigins []string

	// Object storage. MinioEndpoint is the browser-accessible base URL
	// (e.g. "http://localhost:9000"); the scheme also decides TLS for the client.
	StorageDriver  string
	MinioEndpoint  string
	MinioBucket    string
	MinioAccessKey string
	MinioSecretKey string
	MinioRegion    string

	UploadMaxBytes  int64
	UploadTimeout   time.Duration
	UploadRateLimit int
}

// Load reads configuration from a .env file (if present) and environment variables.
// It reports whether a .env file was found so the caller can log it once a logger exists.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		DatabaseURL:  required("DATABASE_URL"),
		Port:         getEnv("PORT", "8080"),
		AppEnv:       getEnv("APP_ENV", "development"),
		AllowOrigins: splitAndTrim(getEnv("ALLOW_ORIGINS", "*")),

		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", DriverMinio)),
		MinioEndpoint:  strings.TrimRight(required("MINIO_ENDPOINT"), "/"),
		MinioBucket:    required("MINIO_BUCKET_NAME"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),
	}
	if len(missing) > 0 {
		return nil, dotenv, fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
	}

	switch cfg.StorageDriver {
	case DriverMinio, DriverS3:
	default:
		return nil, dotenv, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	maxBytes, err := humanize.ParseBytes(getEnv("UPLOAD_MAX_SIZE", "10MB"))
	if err != nil || maxBytes == 0 {
		return nil, dotenv, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %q", os.Getenv("UPLOAD_MAX_SIZE"))
	}
	cfg.UploadMaxBytes = int64(maxBytes)

	cfg.UploadTimeout, err = time.ParseDuration(getEnv("UPLOAD_TIMEOUT", "30s"))
	if err != nil || cfg.UploadTimeout <= 0 {
		return nil, dotenv, fmt.Errorf("invalid UPLOAD_TIMEOUT: %q", os.Getenv("UPLOAD_TIMEOUT"))
	}

	cfg.UploadRateLimit, err = strconv.Atoi(getEnv("UPLOAD_RATE_LIMIT", "60"))
	if err != nil || cfg.UploadRateLimit <= 0 {
		return nil, dotenv, fmt.Errorf("invalid UPLOAD_RATE_LIMIT: %q", os.Getenv("UPLOAD_RATE_LIMIT"))
	}

	return cfg, dotenv, nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
