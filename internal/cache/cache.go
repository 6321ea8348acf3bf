package cache

import (
	"sync"
	"time"

	"github.com/ppiankov/durparse/internal/models"
)

// DefaultMaxSize bounds the number of cached results.
const DefaultMaxSize = 10000

type entry struct {
	result    models.Result
	expiresAt time.Time
}

// Cache provides thread-safe caching of expression -> result mappings
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	maxSize int
}

// New creates a new cache with given TTL
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		maxSize: DefaultMaxSize,
	}
}

// Get retrieves a result from the cache
func (c *Cache) Get(key string) (models.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return models.Result{}, false
	}
	return e.result, true
}

// Set stores a result in the cache
func (c *Cache) Set(key string, result models.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.evict()
	}

	c.entries[key] = &entry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// evict removes expired entries, then 10% of the rest if still full
func (c *Cache) evict() {
	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) < c.maxSize {
		return
	}
	target := max(c.maxSize/10, 1)
	count := 0
	for key := range c.entries {
		delete(c.entries, key)
		count++
		if count >= target {
			break
		}
	}
}

// Clear removes all entries from the cache
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Size returns the current number of entries in the cache
func (c *Cache) Size() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
