package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		JWT
		Database
		Redis
		Email
		Hashing
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	JWT struct {
		Secret string
	}
	Database struct {
		Path string // Empty means in-memory user storage
	}
	Redis struct {
		Addr     string // Empty means in-memory token/2FA storage
		Password string
	}
	Email struct {
		BaseURL   string
		Sender    string
		AuthToken string // Empty means log-only email delivery
		Timeout   time.Duration
	}
	Hashing struct {
		Workers int // Zero means one worker per CPU
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("database_path", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("email_base_url", "https://api.postmarkapp.com")
	v.SetDefault("email_sender", "")
	v.SetDefault("email_auth_token", "")
	v.SetDefault("email_timeout", "10s")
	v.SetDefault("hash_workers", 0)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		JWT: JWT{
			Secret: v.GetString("JWT_SECRET"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		Email: Email{
			BaseURL:   v.GetString("EMAIL_BASE_URL"),
			Sender:    v.GetString("EMAIL_SENDER"),
			AuthToken: v.GetString("EMAIL_AUTH_TOKEN"),
			Timeout:   v.GetDuration("EMAIL_TIMEOUT"),
		},
		Hashing: Hashing{
			Workers: v.GetInt("HASH_WORKERS"),
		},
	}
}
