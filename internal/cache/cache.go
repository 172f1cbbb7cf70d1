package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a bounded, expiring map used to memoize upstream API responses.
// Entries are evicted least-recently-used once capacity is reached, and
// expired entries are treated as absent on read. Safe for concurrent use.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

// New creates a cache holding at most size entries, each valid for ttl.
func New[V any](size int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

// Get returns the cached value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Put stores a value under key, evicting an old entry if at capacity.
func (c *Cache[V]) Put(key string, value V) {
	c.lru.Add(key, value)
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Key builds a normalized cache key from an operation name and its
// distinguishing arguments. Case and surrounding whitespace are stripped so
// "London" and " london " resolve to the same entry.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(normalized, ":")
}
