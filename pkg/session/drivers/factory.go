package drivers

import (
	"errors"
	"time"

	"realestate-chatbot-be/pkg/session"

	"github.com/redis/go-redis/v9"
)

// StorageType represents the type of session storage.
type StorageType string

const (
	StorageTypeMemory StorageType = "memory"
	StorageTypeRedis  StorageType = "redis"
)

var (
	ErrInvalidStorageType = errors.New("invalid session storage type")
	ErrInvalidConfig      = errors.New("invalid session storage config")
)

// StorageOption is a functional option for configuring a storage driver.
type StorageOption func(*storageConfig)

type storageConfig struct {
	redisClient *redis.Client
	redisTTL    time.Duration
}

// WithRedisClient sets the Redis client for the Redis driver.
func WithRedisClient(client *redis.Client) StorageOption {
	return func(c *storageConfig) {
		c.redisClient = client
	}
}

// WithRedisTTL sets the TTL for Redis keys. Zero means no expiry.
func WithRedisTTL(ttl time.Duration) StorageOption {
	return func(c *storageConfig) {
		c.redisTTL = ttl
	}
}

// NewStorage creates a storage driver by type. The Redis driver requires
// WithRedisClient.
func NewStorage(storageType StorageType, opts ...StorageOption) (session.Storage, error) {
	cfg := &storageConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storageType {
	case StorageTypeMemory:
		return NewMemoryStorage(), nil
	case StorageTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return NewRedisStorage(cfg.redisClient, cfg.redisTTL), nil
	default:
		return nil, ErrInvalidStorageType
	}
}
