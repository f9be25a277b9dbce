// Package http assembles the gin router for the authentication service.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mlukasik/auth-service/internal/auth"
	"github.com/mlukasik/auth-service/internal/database"
)

// RouterConfig carries the router's dependencies. DB and Redis are
// optional: nil means the corresponding backend runs in memory and is
// reported as "not configured" by the health endpoint.
type RouterConfig struct {
	AuthController *auth.Controller
	DB             *database.Database
	Redis          *redis.Client
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	cfg.AuthController.RegisterRoutes(router)

	healthController := NewHealthController(cfg.DB, cfg.Redis, cfg.Version)
	router.GET("/health", healthController.Status)

	return router
}
