// @title        Freelance Marketplace API
// @version      1.0
// @description  Marketplace where customers post projects and executors bid on them.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/workbridge/freelance-api/internal/api"
	"github.com/workbridge/freelance-api/internal/core/service"
	mongodb "github.com/workbridge/freelance-api/internal/infrastructure/db/mongo"
	redisdb "github.com/workbridge/freelance-api/internal/infrastructure/db/redis"
	"github.com/workbridge/freelance-api/internal/infrastructure/queue"
	"github.com/workbridge/freelance-api/internal/pkg/config"
	"github.com/workbridge/freelance-api/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	activityWorkers = 4
	shutdownTimeout = 10 * time.Second
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}
	portfolioRepo := mongodb.NewPortfolioRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	snapshots := redisdb.NewSnapshotStore(rdb)
	pairLock := redisdb.NewPairLock(rdb)

	// --- Activity audit trail ---
	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(activityWorkers, activityService, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	authService := service.NewAuthService(userRepo, snapshots, cfg.JWTSecret, tokenTTL)
	projectService := service.NewProjectService(snapshots, dispatcher, log)
	responseService := service.NewResponseService(snapshots, projectService, dispatcher, log)
	chatService := service.NewChatService(snapshots, pairLock, dispatcher, log)
	portfolioService := service.NewPortfolioService(portfolioRepo, log)

	// Warm the marketplace registries so the first request doesn't pay
	// the snapshot decode cost.
	for name, load := range map[string]func(context.Context) error{
		"projects":  projectService.Load,
		"responses": responseService.Load,
		"chats":     chatService.Load,
	} {
		if err := load(ctx); err != nil {
			log.Fatal().Err(err).Str("registry", name).Msg("snapshot load failed")
		}
	}

	e := api.NewRouter(api.Services{
		Auth:      authService,
		Projects:  projectService,
		Responses: responseService,
		Chats:     chatService,
		Portfolio: portfolioService,
	}, db, rdb, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	waitForShutdown(log)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func waitForShutdown(log zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
