package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/eduai-platform/internal/logger"
)

// RedisStore is the device-local key-value storage backed by Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	exp    time.Duration // 0 keeps keys forever
}

// NewRedisStore creates a store that namespaces every key with prefix.
func NewRedisStore(client *redis.Client, prefix string, expiration time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		exp:    expiration,
	}
}

// Get returns the value stored under key or ErrKeyNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()

	logger.Log.Debugw("redis get",
		"key", s.prefix+key,
		"size", len(val),
		"error", err,
	)

	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	return val, err
}

// Set stores value under key.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	err := s.client.Set(ctx, s.prefix+key, value, s.exp).Err()

	logger.Log.Debugw("redis set",
		"key", s.prefix+key,
		"size", len(value),
		"error", err,
	)

	return err
}

// Delete removes keys. Missing keys are ignored.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	n, err := s.client.Del(ctx, full...).Result()

	logger.Log.Debugw("redis del",
		"keys", full,
		"result", n,
		"error", err,
	)

	return err
}
