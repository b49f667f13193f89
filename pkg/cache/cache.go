// Package cache is a thin JSON cache over Redis. Every call is a no-op
// (or a miss) while RDB is nil, so callers never branch on availability.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bilemo/api/config"
	"github.com/bilemo/api/pkg/metrics"
)

const store = "redis"

var RDB *redis.Client

// Connect initialises the Redis client and verifies the connection with a
// ping. An empty REDIS_ADDR leaves caching disabled.
func Connect() error {
	addr := config.RedisAddr()
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("cache: ping %s: %w", addr, err)
	}

	RDB = client
	return nil
}

// Close shuts the client down.
func Close() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

// Enabled reports whether a Redis client is connected.
func Enabled() bool { return RDB != nil }

// Get decodes the JSON stored at key into dest. It reports a miss on any
// failure, including a decode error.
func Get(ctx context.Context, key string, dest any) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Bytes()
	if err != nil {
		metrics.CacheMisses.WithLabelValues(store).Inc()
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(store).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(store).Inc()
	return true
}

// Set stores value as JSON under key for ttl.
func Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(ctx, key, data, ttl).Err()
}

// Version returns the generation counter stored at key, 0 when unset.
// Cache keys that embed the version are invalidated wholesale by Bump.
func Version(ctx context.Context, key string) int64 {
	if RDB == nil {
		return 0
	}
	n, err := RDB.Get(ctx, key).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0
	}
	return n
}

// Bump increments the generation counter at key.
func Bump(ctx context.Context, key string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Incr(ctx, key).Err()
}
