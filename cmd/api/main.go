package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/database"
	"github.com/pageza/mise/backend/internal/logging"
	"github.com/pageza/mise/backend/internal/metrics"
	"github.com/pageza/mise/backend/internal/router"
	"github.com/pageza/mise/backend/internal/server"
	"github.com/pageza/mise/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.New(logging.Config{Level: "info", Format: "console"}).
			Fatal("failed to load config", zap.Error(err))
	}

	logger := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Env.IsLocal(),
	})
	defer func() { _ = logger.Sync() }()
	logger.Info("starting mise api", zap.String("environment", string(cfg.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if cfg.Database.Driver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable; caching and rate limiting disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var store service.ObjectStore
	if cfg.Storage.Enabled {
		s3Cfg, err := config.NewS3Config(ctx, cfg.Storage)
		if err != nil {
			logger.Warn("object storage unavailable; exports disabled", zap.Error(err))
		} else {
			store = s3Cfg
		}
	}

	engine := router.SetupRouter(router.Dependencies{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Store:   store,
		Metrics: metrics.New(),
		Logger:  logger,
	})

	if err := server.New(cfg.Server, engine, logger).Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
