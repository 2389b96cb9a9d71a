package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rentease_backend/internal/feature/auth/usecase"
)

// RedisStore keeps codes in Redis with SET EX, so they survive restarts.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

var _ usecase.OTPStore = (*RedisStore)(nil)

// verifyScript deletes the key only when it holds ARGV[1].
// It returns -1 for a missing key, 0 for a mismatch and 1 when consumed.
var verifyScript = redis.NewScript(`
local live = redis.call("GET", KEYS[1])
if not live then
	return -1
end
if live == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// NewRedisStore creates a store under the key prefix (e.g. "otp").
func NewRedisStore(rdb *redis.Client, ttl time.Duration, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (s *RedisStore) key(email string) string {
	return s.prefix + ":" + email
}

// Issue stores a fresh code, overwriting any previous one.
func (s *RedisStore) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, s.key(email), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}
	return code, nil
}

// Verify compares code with the stored value and deletes it on a match, atomically.
func (s *RedisStore) Verify(ctx context.Context, email, code string) (bool, error) {
	n, err := verifyScript.Run(ctx, s.rdb, []string{s.key(email)}, canonical(code)).Int()
	if err != nil {
		return false, fmt.Errorf("failed to verify otp: %w", err)
	}
	switch n {
	case -1:
		return false, usecase.ErrOTPNotRequested
	case 1:
		return true, nil
	default:
		return false, nil
	}
}

// Invalidate deletes the stored code.
func (s *RedisStore) Invalidate(ctx context.Context, email string) error {
	if err := s.rdb.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
