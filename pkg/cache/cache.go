package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores JSON documents under string keys with a fixed TTL.
type Cache interface {
	// Get decodes the value at key into dest and reports whether it was present
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
	// Version reads the counter at key, 0 when it was never bumped
	Version(ctx context.Context, key string) (int64, error)
	// Bump increments the counter at key. Counters do not expire.
	Bump(ctx context.Context, key string) error
}

type redisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration, log *zap.Logger) Cache {
	return &redisCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "cache")),
	}
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// Stale layout from an older release; drop it and treat as a miss
		c.log.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		if err := c.client.Del(ctx, key).Err(); err != nil {
			c.log.Warn("Failed to drop undecodable cache entry", zap.String("key", key), zap.Error(err))
		}
		return false, nil
	}

	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete %v: %w", keys, err)
	}

	return nil
}

func (c *redisCache) Version(ctx context.Context, key string) (int64, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get version %s: %w", key, err)
	}

	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse version %s: %w", key, err)
	}
	return version, nil
}

func (c *redisCache) Bump(ctx context.Context, key string) error {
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("incr %s: %w", key, err)
	}
	return nil
}

// Nop is used when no Redis address is configured. Every read misses.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) Set(context.Context, string, any) error         { return nil }
func (Nop) Delete(context.Context, ...string) error        { return nil }
func (Nop) Version(context.Context, string) (int64, error) { return 0, nil }
func (Nop) Bump(context.Context, string) error             { return nil }

// NewRedisClient connects and pings. The caller owns the returned client.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	return client, nil
}
