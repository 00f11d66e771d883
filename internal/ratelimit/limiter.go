// Package ratelimit caps how many assist requests a user may make per window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Counter increments a key that expires after window and returns the new count.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
}

// NewRedisCounter counts with INCR and EXPIRE in one transaction.
func NewRedisCounter(client *redis.Client) Counter {
	return &redisCounter{client: client}
}

func (c *redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Limiter is a fixed window limiter keyed by user.
type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewLimiter builds a limiter allowing limit requests per window. A nil
// counter or a non-positive limit admits everything.
func NewLimiter(counter Counter, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{counter: counter, limit: limit, window: window, logger: logger, now: time.Now}
}

// Enabled reports whether requests are actually counted.
func (l *Limiter) Enabled() bool {
	return l != nil && l.counter != nil && l.limit > 0 && l.window > 0
}

// Allow counts a request for userID. Counter failures admit the request.
func (l *Limiter) Allow(ctx context.Context, userID string) bool {
	if !l.Enabled() {
		return true
	}
	count, err := l.counter.Incr(ctx, l.key(userID), l.window)
	if err != nil {
		l.logger.Warn("rate limiter unavailable, admitting request", zap.String("user_id", userID), zap.Error(err))
		return true
	}
	if count > int64(l.limit) {
		l.logger.Info("rate limit exceeded", zap.String("user_id", userID), zap.Int64("count", count), zap.Int("limit", l.limit))
		return false
	}
	return true
}

func (l *Limiter) key(userID string) string {
	bucket := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("ratelimit:assist:%s:%d", userID, bucket)
}
