package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitStore shares fixed windows across instances. Keys are
// bucketed by window number so counters expire on their own.
type RedisRateLimitStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRateLimitStore(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client, now: time.Now}
}

func (s *RedisRateLimitStore) Allow(ctx context.Context, key string, cfg RateLimitConfig) (bool, int, error) {
	window := s.now().UnixNano() / int64(cfg.Window)
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, window)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, bucket)
	// Two windows of TTL so a clock-edge bucket is never dropped mid-window.
	pipe.Expire(ctx, bucket, 2*cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis rate limit: %w", err)
	}

	count := int(incr.Val())
	if count > cfg.Requests {
		return false, 0, nil
	}
	return true, cfg.Requests - count, nil
}
