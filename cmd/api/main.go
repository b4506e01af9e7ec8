package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/shopstack/ecommerce-api/internal/api"
	"github.com/shopstack/ecommerce-api/internal/auth"
	"github.com/shopstack/ecommerce-api/internal/core/ports"
	"github.com/shopstack/ecommerce-api/internal/core/service"
	"github.com/shopstack/ecommerce-api/internal/infrastructure/config"
	mongodb "github.com/shopstack/ecommerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shopstack/ecommerce-api/internal/infrastructure/db/redis"
	"github.com/shopstack/ecommerce-api/internal/infrastructure/queue"
	"github.com/shopstack/ecommerce-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logg.Fatal().Err(err).Msg("ensure indexes")
	}

	// Redis is optional: without it the login throttle is disabled and the
	// readiness probe only checks Mongo.
	var rdb *goredis.Client
	var limiter ports.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logg.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
		limiter = redisdb.NewLoginLimiter(rdb, cfg.RateLimit.MaxFailures, cfg.RateLimit.Window)
	}

	userRepo := mongodb.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	auditService := service.NewAuditService(auditRepo, logg)
	dispatcher := queue.NewDispatcher(0, auditService, logg)
	dispatcher.Start(ctx)

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	codec := auth.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authService := service.NewAuthService(userRepo, hasher, codec, limiter, dispatcher, logg)

	e := api.NewRouter(api.Dependencies{
		Env:         cfg.Env,
		DB:          db,
		Redis:       rdb,
		Codec:       codec,
		UserRepo:    userRepo,
		AuthService: authService,
		Log:         logg,
	})

	go func() {
		logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server start")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logg.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("server shutdown")
	}
}
