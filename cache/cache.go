package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// entry holds a cached value with its creation timestamp.
type entry[V any] struct {
	value     V
	createdAt time.Time
}

// Cache is a simple in-memory TTL cache. It is safe for concurrent use.
type Cache[V any] struct {
	mu         sync.RWMutex
	store      map[string]*entry[V]
	maxEntries int
	ttl        time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

// New creates a new Cache with the given maximum number of entries.
// A background goroutine evicts entries older than ttl every ttl/12
// (at least once a second). Call Close to stop it.
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		store:      make(map[string]*entry[V]),
		maxEntries: maxEntries,
		ttl:        ttl,
		done:       make(chan struct{}),
	}

	go c.cleanupLoop()
	return c
}

// Key generates a cache key from its parts.
func Key(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte("|"))
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached value if it exists and has not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.GetFresh(key, c.ttl)
}

// GetFresh retrieves a cached value only if it is younger than maxAge.
// If maxAge <= 0, no cache lookup is performed.
func (c *Cache[V]) GetFresh(key string, maxAge time.Duration) (V, bool) {
	var zero V
	if maxAge <= 0 {
		return zero, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return zero, false
	}

	if maxAge > c.ttl {
		maxAge = c.ttl
	}
	if time.Since(e.createdAt) > maxAge {
		return zero, false
	}

	return e.value, true
}

// Set stores a value in the cache. If the cache is at capacity,
// a random entry is evicted to make room.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict one random entry if at capacity (map iteration is random in Go).
	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry[V]{
		value:     value,
		createdAt: time.Now(),
	}
}

// Delete removes key from the cache.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.store, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// MaxEntries returns the configured capacity.
func (c *Cache[V]) MaxEntries() int {
	return c.maxEntries
}

// Close stops the cleanup goroutine.
func (c *Cache[V]) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// cleanupLoop evicts expired entries until Close is called.
func (c *Cache[V]) cleanupLoop() {
	interval := c.ttl / 12
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.evictExpired(time.Now())
		}
	}
}

func (c *Cache[V]) evictExpired(now time.Time) {
	cutoff := now.Add(-c.ttl)
	c.mu.Lock()
	for k, e := range c.store {
		if e.createdAt.Before(cutoff) {
			delete(c.store, k)
		}
	}
	c.mu.Unlock()
}
