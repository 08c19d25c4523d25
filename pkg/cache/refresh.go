package cache

import (
	"context"
	"time"
)

// RefreshCache wraps a cache so every read misses while writes still land
// in the underlying store. Use it to force fresh results without losing
// them: the recomputed value replaces the stale entry.
type RefreshCache struct {
	inner Cache
}

// NewRefreshCache creates a read-bypassing wrapper around inner.
func NewRefreshCache(inner Cache) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &RefreshCache{inner: inner}
}

// Get always returns a cache miss.
func (c *RefreshCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set stores in the underlying cache.
func (c *RefreshCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, key, data, ttl)
}

// Delete removes from the underlying cache.
func (c *RefreshCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close closes the underlying cache.
func (c *RefreshCache) Close() error {
	return c.inner.Close()
}

// Ensure RefreshCache implements Cache.
var _ Cache = (*RefreshCache)(nil)
