package datastore

import (
	"context"
	"time"

	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/pkg/training"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CachedStore keeps per-account training data in memory for ttl. Writes and
// feature checks pass through untouched.
type CachedStore struct {
	contract.ChatbotStore
	cache *cache.Cache
}

func NewCachedStore(inner contract.ChatbotStore, ttl time.Duration) *CachedStore {
	return &CachedStore{
		ChatbotStore: inner,
		cache:        cache.New(ttl, 2*ttl),
	}
}

func (s *CachedStore) QAPairs(ctx context.Context, accountID uuid.UUID) ([]training.QAPair, error) {
	return cached(s.cache, "qa:"+accountID.String(), func() ([]training.QAPair, error) {
		return s.ChatbotStore.QAPairs(ctx, accountID)
	})
}

func (s *CachedStore) FileContents(ctx context.Context, accountID uuid.UUID) ([]training.FileContent, error) {
	return cached(s.cache, "files:"+accountID.String(), func() ([]training.FileContent, error) {
		return s.ChatbotStore.FileContents(ctx, accountID)
	})
}

func (s *CachedStore) Properties(ctx context.Context, accountID uuid.UUID) ([]training.Property, error) {
	return cached(s.cache, "properties:"+accountID.String(), func() ([]training.Property, error) {
		return s.ChatbotStore.Properties(ctx, accountID)
	})
}

// Invalidate drops everything cached for an account
func (s *CachedStore) Invalidate(accountID uuid.UUID) {
	id := accountID.String()
	s.cache.Delete("qa:" + id)
	s.cache.Delete("files:" + id)
	s.cache.Delete("properties:" + id)
}

// errors are not cached
func cached[T any](c *cache.Cache, key string, load func() ([]T, error)) ([]T, error) {
	if v, found := c.Get(key); found {
		return v.([]T), nil
	}
	rows, err := load()
	if err != nil {
		return nil, err
	}
	c.SetDefault(key, rows)
	return rows, nil
}
