package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the counter surface the rate limiter needs. Redis is used
// for request throttling only; tenant and role decisions are never
// cached, so membership changes take effect on the next request.
type Client interface {
	IncrWithTTL(key string, window time.Duration) (int64, error)
	Close() error
}

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisClient() (*RedisCache, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{rdb: rdb}, nil
}

// IncrWithTTL bumps a counter, setting the expiry window on first use.
func (c *RedisCache) IncrWithTTL(key string, window time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
