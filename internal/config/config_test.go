package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(3000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Empty(t, cfg.Database.Path)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Email.AuthToken)
	assert.Equal(t, "https://api.postmarkapp.com", cfg.Email.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Email.Timeout)
	assert.Equal(t, 0, cfg.Hashing.Workers)
}

func TestNewConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("DATABASE_PATH", "./auth.db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("EMAIL_AUTH_TOKEN", "postmark-token")
	t.Setenv("EMAIL_TIMEOUT", "3s")
	t.Setenv("HASH_WORKERS", "4")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, "super-secret", cfg.JWT.Secret)
	assert.Equal(t, "./auth.db", cfg.Database.Path)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "postmark-token", cfg.Email.AuthToken)
	assert.Equal(t, 3*time.Second, cfg.Email.Timeout)
	assert.Equal(t, 4, cfg.Hashing.Workers)
}
