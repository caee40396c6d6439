package drivers

import (
	"context"
	"testing"
	"time"

	"realestate-chatbot-be/pkg/session"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", v)
}

func TestNewStorage(t *testing.T) {
	s, err := NewStorage(StorageTypeMemory)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	_, err = NewStorage(StorageTypeRedis)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	s, err = NewStorage(StorageTypeRedis, WithRedisClient(client), WithRedisTTL(time.Hour))
	require.NoError(t, err)
	assert.IsType(t, &RedisStorage{}, s)

	_, err = NewStorage("sqlite")
	assert.ErrorIs(t, err, ErrInvalidStorageType)
}

func TestRedisStorageUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := NewRedisStorage(client, 0)
	defer s.Close()

	ctx := context.Background()
	assert.ErrorIs(t, s.Set(ctx, "k", "v"), session.ErrStorageUnavailable)

	_, found, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, session.ErrStorageUnavailable)
	assert.False(t, found)
}
