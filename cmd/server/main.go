package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"rentease_backend/internal/app/di"
	"rentease_backend/internal/app/router"
	authhandler "rentease_backend/internal/feature/auth/transport/handler"
	authusecase "rentease_backend/internal/feature/auth/usecase"
	propertyhandler "rentease_backend/internal/feature/property/transport/handler"
	propertyusecase "rentease_backend/internal/feature/property/usecase"
	"rentease_backend/internal/platform/config"
	"rentease_backend/internal/platform/http/handler"
	jwtmw "rentease_backend/internal/platform/jwt"
	"rentease_backend/internal/platform/logger"
	infraredis "rentease_backend/internal/platform/redis"
)

const (
	shutdownTimeout = 15 * time.Second
	readyTimeout    = 2 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.Setup(logger.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.LogFormat == "json" || (cfg.LogFormat == "" && cfg.IsProduction()),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// Storage
	storage, err := di.NewStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := storage.Close(closeCtx); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()
	checks := map[string]handler.Check{cfg.StorageDriver: storage.Check}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.OptionsFromEnv()); err != nil {
		log.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("Failed to close Redis client", "error", err)
			}
		}()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// Adapters
	properties := di.NewPropertyRepository(rdb, cfg.CacheTTL, storage.Properties)
	otps := di.NewOTPStore(ctx, rdb, cfg.OTPTTL)
	mailer, err := di.NewMailer(cfg)
	if err != nil {
		return err
	}
	images, err := di.NewImageStore(cfg)
	if err != nil {
		return err
	}
	screener, closeScreener := di.NewImageScreener(ctx, cfg)
	defer closeScreener()
	describer := di.NewDescriber(ctx, cfg)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(storage.Users, jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTTTL), otps, mailer, cfg.OTPTTL)
	propertyUC := propertyusecase.NewPropertyUsecase(properties, images, screener, describer)

	// Handler / ルータ生成
	r := router.NewRouter(router.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC),
		Property: propertyhandler.NewPropertyHandler(propertyUC),
		Ready:    handler.Ready(checks, readyTimeout),
	}, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
		Logger:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "storage", cfg.StorageDriver, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
