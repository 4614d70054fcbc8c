package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"todoapi/internal/core/port"
)

type memoryRepository struct {
	cache *cache.Cache
}

// NewMemoryRepository returns an in-process cache. Entries stored with a
// zero ttl never expire.
func NewMemoryRepository() port.CacheRepository {
	return &memoryRepository{cache: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func (c *memoryRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.cache.Set(key, stored, ttl)

	return nil
}

func (c *memoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := c.cache.Get(key)
	if !found {
		return nil, port.ErrCacheMiss
	}

	return value.([]byte), nil
}

func (c *memoryRepository) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)

	return nil
}

func (c *memoryRepository) HealthCheck(ctx context.Context) error {
	return nil
}

func (c *memoryRepository) Close() error {
	c.cache.Flush()

	return nil
}
