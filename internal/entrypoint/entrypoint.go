package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mlukasik/auth-service/internal/auth"
	"github.com/mlukasik/auth-service/internal/config"
	"github.com/mlukasik/auth-service/internal/database"
	"github.com/mlukasik/auth-service/internal/database/users"
	"github.com/mlukasik/auth-service/internal/domain"
	"github.com/mlukasik/auth-service/internal/email"
	http_controllers "github.com/mlukasik/auth-service/internal/http"
	"github.com/mlukasik/auth-service/internal/storage/memory"
	"github.com/mlukasik/auth-service/internal/storage/redisstore"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then drains it
// within the configured shutdown timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the storage backends, the authentication service and the
// router from configuration, then serves until shutdown.
//
// Backend selection is environment-driven: DATABASE_PATH switches the
// user store from memory to sqlite, REDIS_ADDR switches the banned
// token and 2FA code stores from memory to redis, EMAIL_AUTH_TOKEN
// switches email delivery from log-only to the HTTP provider.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting auth-service v%s", version)

	tokens, err := auth.NewTokenService(cfg.JWT.Secret)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	hasher := auth.NewHasher(cfg.Hashing.Workers)

	var db *database.Database
	var userStore domain.UserStore
	if cfg.Database.Path != "" {
		db, err = database.NewDatabase(cfg.Database.Path)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		userStore = users.NewRepository(db.DB, hasher)
	} else {
		log.Printf("DATABASE_PATH is not set, using in-memory user store")
		userStore = memory.NewUserStore(hasher)
	}

	var redisClient *redis.Client
	var bannedTokens domain.BannedTokenStore
	var twoFACodes domain.TwoFACodeStore
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		bannedTokens = redisstore.NewBannedTokenStore(redisClient)
		twoFACodes = redisstore.NewTwoFACodeStore(redisClient)
	} else {
		log.Printf("REDIS_ADDR is not set, using in-memory token and 2FA stores")
		bannedTokens = memory.NewBannedTokenStore()
		twoFACodes = memory.NewTwoFACodeStore()
	}

	var emailClient domain.EmailClient
	if cfg.Email.AuthToken != "" {
		emailClient = email.NewHTTPClient(cfg.Email.BaseURL, cfg.Email.Sender, cfg.Email.AuthToken, cfg.Email.Timeout)
	} else {
		log.Printf("EMAIL_AUTH_TOKEN is not set, 2FA codes will be logged instead of sent")
		emailClient = &email.LogClient{}
	}

	service := auth.NewService(userStore, bannedTokens, twoFACodes, emailClient, hasher, tokens)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		AuthController: auth.NewController(service),
		DB:             db,
		Redis:          redisClient,
		Version:        version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing redis client: %v", err)
			}
		}
		if db != nil {
			if err := db.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}
	})
}
