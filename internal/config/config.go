package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the whole application configuration,
// populated from environment variables.
type Config struct {
	App    AppConfig
	Auth   AuthConfig
	Upload UploadConfig
	Redis  RedisConfig
	MinIO  MinIOConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type AuthConfig struct {
	JWTSecret   string
	TokenExpiry int // hours
	// Users is parsed from AUTH_USERS: "email:bcrypt-hash" pairs
	// separated by commas. Empty means login always fails.
	Users []UserCredential
}

type UserCredential struct {
	Email        string
	PasswordHash string
}

type UploadConfig struct {
	MaxFileSize  int64 // bytes, per uploaded file
	MaxSizeBytes int64 // compression ceiling
	MaxDimension int   // longest side after ingestion compression
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string // empty disables the object-storage export target
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Image Resizer API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			TokenExpiry: getEnvInt("JWT_EXPIRY_HOURS", 24),
			Users:       parseUsers(getEnv("AUTH_USERS", "")),
		},
		Upload: UploadConfig{
			MaxFileSize:  int64(getEnvInt("UPLOAD_MAX_FILE_SIZE", 20*1024*1024)),
			MaxSizeBytes: int64(getEnvInt("UPLOAD_COMPRESS_CEILING", 1024*1024)),
			MaxDimension: getEnvInt("UPLOAD_MAX_DIMENSION", 3500),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "image-exports"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks critical configuration
func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.Auth.JWTSecret == "your-secret-key-change-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Upload.MaxDimension <= 0 {
		return fmt.Errorf("UPLOAD_MAX_DIMENSION must be positive")
	}
	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("UPLOAD_COMPRESS_CEILING must be positive")
	}
	return nil
}

// parseUsers parses "email:hash,email:hash" pairs. Malformed entries
// are dropped rather than failing startup.
func parseUsers(raw string) []UserCredential {
	if raw == "" {
		return nil
	}
	var users []UserCredential
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		users = append(users, UserCredential{Email: parts[0], PasswordHash: parts[1]})
	}
	return users
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
