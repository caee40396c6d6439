package drivers

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStorage keeps session entries for the life of the process. Entries
// never expire.
type MemoryStorage struct {
	cache *cache.Cache
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	if x, found := s.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}
