// Command reprice re-derives every stored listing's headline price string
// from its digits and type, e.g. "15000" on a PG becomes "₹15,000/month".
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"rentease_backend/internal/app/di"
	propertyusecase "rentease_backend/internal/feature/property/usecase"
	"rentease_backend/internal/platform/config"
	"rentease_backend/internal/platform/logger"
	"rentease_backend/internal/platform/ratelimiter"
	infraredis "rentease_backend/internal/platform/redis"
)

const runTimeout = 30 * time.Minute

func main() {
	cfg := config.Load()
	log := logger.Setup(logger.Options{Level: cfg.LogLevel, JSON: cfg.LogFormat == "json"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("reprice failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	storage, err := di.NewStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	// Redis があればキャッシュ経由で更新し、一覧キャッシュを無効化する
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.OptionsFromEnv()); err == nil {
		rdb = tmp
		defer rdb.Close()
	}
	properties := di.NewPropertyRepository(rdb, cfg.CacheTTL, storage.Properties)

	uc := propertyusecase.NewPropertyUsecase(properties, nil, nil, nil)
	limiter := ratelimiter.NewRateLimiter(cfg.RepriceRate, time.Second)

	start := time.Now()
	updated, err := uc.Reprice(ctx, limiter)
	if err != nil {
		log.Error("reprice stopped early", "updated", updated)
		return err
	}
	log.Info("reprice ok", "updated", updated, "elapsed", time.Since(start))
	return nil
}
