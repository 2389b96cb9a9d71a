package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	authusecase "rentease_backend/internal/feature/auth/usecase"
	propertyusecase "rentease_backend/internal/feature/property/usecase"
	"rentease_backend/internal/platform/cache"
	"rentease_backend/internal/platform/otp"
)

// otpSweepInterval はメモリ版OTPストアの掃除間隔です。
const otpSweepInterval = time.Minute

// NewPropertyRepository は Redis が利用可能ならキャッシュでラップしたリポジトリを返します。
// Redis が無い場合は inner をそのまま返します。
func NewPropertyRepository(rdb *redis.Client, ttl time.Duration, inner propertyusecase.PropertyRepository) propertyusecase.PropertyRepository {
	if rdb == nil {
		return inner
	}
	return cache.NewCachingPropertyRepository(rdb, ttl, inner, "properties")
}

// NewOTPStore は OTPStore の実装を生成します。
// Redis が利用可能な場合は Redis 実装を、そうでなければメモリ実装を返します。
// メモリ実装の掃除ゴルーチンは ctx のキャンセルで停止します。
func NewOTPStore(ctx context.Context, rdb *redis.Client, ttl time.Duration) authusecase.OTPStore {
	if rdb != nil {
		return otp.NewRedisStore(rdb, ttl, "otp")
	}
	store := otp.NewMemoryStore(ttl)
	go store.RunSweeper(ctx, otpSweepInterval)
	return store
}
