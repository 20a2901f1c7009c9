package pkg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dronedesk"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is returned when no Redis connection exists. Callers
// decide whether the feature degrades (sweep lock) or fails (sessions).
var ErrRedisUnavailable = errors.New("redis unavailable")

// RedisSet stores a value in Redis with a TTL. The value is JSON-serialized.
func RedisSet(key string, value any, ttl time.Duration) error {
	if dronedesk.Redis == nil {
		return ErrRedisUnavailable
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return dronedesk.Redis.Set(ctx, key, data, ttl).Err()
}

// RedisGet retrieves a value from Redis and JSON-deserializes it into dest.
// Returns redis.Nil if the key does not exist.
func RedisGet(key string, dest any) error {
	if dronedesk.Redis == nil {
		return ErrRedisUnavailable
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := dronedesk.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// RedisDelete removes a key from Redis.
func RedisDelete(key string) error {
	if dronedesk.Redis == nil {
		return ErrRedisUnavailable
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return dronedesk.Redis.Del(ctx, key).Err()
}

// RedisTryLock takes a best-effort distributed lock via SETNX. It returns
// true when the lock was acquired. When Redis is down it also returns true:
// the guarded operations are idempotent, so running unlocked is safe.
func RedisTryLock(key string, ttl time.Duration) (bool, error) {
	if dronedesk.Redis == nil {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return dronedesk.Redis.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
}

// RedisUnlock releases a lock taken with RedisTryLock.
func RedisUnlock(key string) {
	if dronedesk.Redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dronedesk.Redis.Del(ctx, key)
}

// IsRedisNil returns true if the error is a redis key-not-found error.
func IsRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
