// Package cache provides a bounded, expiring in-process cache.
//
// Go Pattern: A small wrapper type around a library keeps the rest of the
// codebase talking to a tiny capability (Get/Put/Evict) instead of a
// concrete third-party API. Swapping the backing store later touches one file.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is a least-recently-used cache with a fixed capacity and a per-entry TTL.
// It is safe for concurrent use; the underlying expirable LRU holds its own lock.
type LRU[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

// NewLRU creates a cache holding at most capacity entries, each expiring ttl
// after it was written. A non-positive ttl disables expiry.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRU[K, V]{
		lru: expirable.NewLRU[K, V](capacity, nil, ttl),
	}
}

// Get returns the value for key and whether it was present and unexpired.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Put stores value under key, evicting the least recently used entry when full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.lru.Add(key, value)
}

// Evict removes key. It reports whether the key was present.
func (c *LRU[K, V]) Evict(key K) bool {
	return c.lru.Remove(key)
}

// Len returns the number of cached entries (expired entries may still be counted
// until the background reaper removes them).
func (c *LRU[K, V]) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *LRU[K, V]) Purge() {
	c.lru.Purge()
}
