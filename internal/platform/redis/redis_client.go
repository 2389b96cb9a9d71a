// Package redis は go-redis クライアントの生成を提供します。
package redis

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options は接続先の設定です。
type Options struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// OptionsFromEnv は REDIS_HOST / REDIS_PORT / REDIS_PASSWORD を読み込みます。
func OptionsFromEnv() Options {
	return Options{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// Addr は "host:port" を返します。Host が空の場合は空文字です。
func (o Options) Addr() string {
	if o.Host == "" {
		return ""
	}
	port := o.Port
	if port == "" {
		port = "6379"
	}
	return o.Host + ":" + port
}

// NewRedisClient は接続確認済みのクライアントを返します。
// Host 未設定または Ping 失敗時はエラーを返し、呼び出し側はキャッシュなしで動作します。
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	addr := opts.Addr()
	if addr == "" {
		return nil, ErrNotConfigured
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
