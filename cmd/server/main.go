package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"edusync/backend/config"
	"edusync/backend/internal/api/handler"
	"edusync/backend/internal/api/router"
	"edusync/backend/internal/repository"
	"edusync/backend/internal/service"
	"edusync/backend/pkg/database"
	"edusync/backend/pkg/jwt"
	applogger "edusync/backend/pkg/logger"
	"edusync/backend/pkg/password"
	"edusync/backend/pkg/redis"
	"edusync/backend/pkg/storage"
	"edusync/backend/pkg/validation"
)

func main() {
	// 1. configuration
	cfg, err := config.Load(os.Getenv("EDUSYNC_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting edusync api",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("storage", cfg.Storage.Provider),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. redis, optional: without it the auth endpoints are not rate limited
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	switch {
	case errors.Is(err, redis.ErrDisabled):
		logger.Info("redis not configured, auth rate limiting disabled")
		rdb = nil
	case err != nil:
		logger.Warn("redis unavailable, auth rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. auth primitives
	jwtMgr := jwt.NewManager(&cfg.Auth)
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	// 6. blob storage, optional: media endpoints answer 500 without it
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	var store storage.BlobStore
	if s, err := storage.New(initCtx, &cfg.Storage, logger); err != nil {
		logger.Warn("blob storage unavailable", zap.Error(err))
	} else {
		store = s
	}
	initCancel()

	// 7. repository -> service -> handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, hasher, store, logger)
	h := handler.NewHandler(svc)

	if err := validation.Setup(); err != nil {
		logger.Fatal("register validator translations", zap.Error(err))
	}

	engine := router.Setup(cfg, h, jwtMgr, rdb, db, logger)

	// 8. http server with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute, // media uploads
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("close redis", zap.Error(err))
		}
	}

	logger.Info("server stopped")
}
