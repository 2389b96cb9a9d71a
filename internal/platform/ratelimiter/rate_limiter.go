// Package ratelimiter は一定間隔あたりの操作回数を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiter は interval ごとに limit 回まで操作を許可する固定ウィンドウ方式のリミッターです。
// 複数の goroutine から安全に使用できます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // interval あたりの上限
	interval  time.Duration // リセット単位
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter は新しい RateLimiter を生成します。limit が 0 以下の場合は 1 とみなします。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// Wait は上限に達している場合、次のウィンドウまで待機します。
// 待機中に ctx が終了した場合は ctx.Err() を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		rl.mu.Lock()
		now := rl.now()
		// interval を過ぎたらカウントリセット
		if now.Sub(rl.lastReset) >= rl.interval {
			rl.count = 0
			rl.lastReset = now
		}
		if rl.count < rl.limit {
			rl.count++
			rl.mu.Unlock()
			return nil
		}
		wait := rl.interval - now.Sub(rl.lastReset)
		rl.mu.Unlock()

		slog.Debug("rate limit reached, waiting", "limit", rl.limit, "wait", wait)
		if err := rl.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
