// ABOUTME: In-memory TTL cache keyed by 64-bit content hashes
// ABOUTME: Holds computed plans so identical requests skip the sizing pipeline

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache maps content hashes to values for a fixed TTL. A zero TTL
// disables storage; Get always misses.
type Cache[V any] struct {
	mu    sync.RWMutex
	store map[uint64]entry[V]
	ttl   time.Duration
	now   func() time.Time
}

// New creates a cache. The sweeper that drops expired entries runs until
// ctx is cancelled.
func New[V any](ctx context.Context, ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		store: make(map[uint64]entry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
	if ttl > 0 {
		go c.sweep(ctx, time.Minute)
	}
	return c
}

// Key hashes a canonical request encoding.
func Key(b []byte) uint64 {
	return xxhash.Sum64(b)
}

func (c *Cache[V]) Get(key uint64) (V, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// A Set may have refreshed the key after the read lock was released
		if cur, ok := c.store[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.store, key)
		}
		c.mu.Unlock()
		slog.Debug("Cache expired", "key", key)
		return zero, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.value, true
}

func (c *Cache[V]) Set(key uint64, value V) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.store[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	slog.Debug("Cache set", "key", key, "ttl", c.ttl)
}

// Len reports the number of stored entries, expired ones included until
// the next sweep.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *Cache[V]) removeExpired() int {
	now := c.now()
	removed := 0

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, key)
			removed++
		}
	}
	return removed
}

func (c *Cache[V]) sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.removeExpired(); n > 0 {
				slog.Debug("Cache sweep", "removed", n)
			}
		}
	}
}
