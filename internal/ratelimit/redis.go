package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter mirrors MemoryLimiter's fixed-window counter but keeps
// the counters in Redis, so a request budget is shared across every
// instance of this service rather than enforced per-process. The key
// is namespaced by epoch directly (ratelimit:<key>:<epoch>) instead of
// a sorted set, so a single INCR does the counting and EXPIRE reclaims
// the key once its window has passed — no Lua script required.
type RedisLimiter struct {
	client *redis.Client
	cfg    *Config
}

func NewRedisLimiter(cfg *Config) (*RedisLimiter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Requests <= 0 {
		cfg.Requests = 100
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisLimiter{client: client, cfg: cfg}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	epoch := time.Now().UnixNano() / int64(l.cfg.Window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, epoch)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr: %w", err)
	}
	if count == 1 {
		// First hit in this window: set the key to expire once the
		// window has fully elapsed so stale epochs don't accumulate.
		if err := l.client.Expire(ctx, redisKey, l.cfg.Window).Err(); err != nil {
			return false, fmt.Errorf("redis expire: %w", err)
		}
	}

	return count <= int64(l.cfg.Requests), nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
