package drivers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realestate-chatbot-be/pkg/session"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chatclient:"

// RedisStorage persists session entries in Redis. A zero TTL keeps keys
// until they are cleared explicitly.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStorage{client: client, ttl: ttl}
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", session.ErrStorageUnavailable, err)
	}
	return val, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrStorageUnavailable, err)
	}
	return nil
}

// Close closes the underlying client
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
