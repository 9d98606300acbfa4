package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 24, cfg.Auth.TokenExpiry)
	assert.Equal(t, int64(20*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, int64(1024*1024), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, 3500, cfg.Upload.MaxDimension)
	assert.Empty(t, cfg.Redis.Host)
	assert.Empty(t, cfg.MinIO.Endpoint)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("UPLOAD_MAX_DIMENSION", "1000")
	t.Setenv("AUTH_USERS", "alice@example.com:$2a$10$hash")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 2, cfg.Auth.TokenExpiry)
	assert.Equal(t, 1000, cfg.Upload.MaxDimension)
	require.Len(t, cfg.Auth.Users, 1)
	assert.Equal(t, "alice@example.com", cfg.Auth.Users[0].Email)
}

func TestLoad_RejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Auth.TokenExpiry)
}

func TestParseUsers(t *testing.T) {
	users := parseUsers("a@x.com:hash1, b@y.com:hash2")
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, "hash1", users[0].PasswordHash)
	assert.Equal(t, "b@y.com", users[1].Email)

	assert.Nil(t, parseUsers(""))
	assert.Empty(t, parseUsers("malformed"))
	assert.Empty(t, parseUsers(":hash-only,email-only:"))
}

func TestParseUsers_HashMayContainColons(t *testing.T) {
	users := parseUsers("a@x.com:$2a$10$abc:def")
	require.Len(t, users, 1)
	assert.Equal(t, "$2a$10$abc:def", users[0].PasswordHash)
}
