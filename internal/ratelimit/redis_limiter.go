package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFixedWindow counts requests in Redis so the limit holds across
// service instances.
type RedisFixedWindow struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string
}

// NewRedisFixedWindow constructs a Redis-backed limiter.
func NewRedisFixedWindow(client *redis.Client, max int, window time.Duration) *RedisFixedWindow {
	return &RedisFixedWindow{
		client: client,
		max:    max,
		window: window,
		prefix: "ratelimit:",
	}
}

// Allow increments the per-key counter, starting the window on first use.
func (l *RedisFixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.max), nil
}
