// Package cache provides a small typed TTL cache on top of
// patrickmn/go-cache. It memoises values that are expensive to produce
// and safe to share for the lifetime of a process, such as downloaded
// label documents.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores values of type V keyed by string.
type Cache[V any] struct {
	store *gocache.Cache
}

// New creates a cache whose entries expire after defaultTTL. Expired
// entries are purged every cleanupInterval.
func New[V any](defaultTTL, cleanupInterval time.Duration) *Cache[V] {
	return &Cache[V]{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the value stored under key, if it is present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	v, ok := c.store.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(V)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Set stores value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores value under key with a custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.store.Flush()
}

// Len returns the number of entries, including expired ones not yet purged.
func (c *Cache[V]) Len() int {
	return c.store.ItemCount()
}
