// ABOUTME: Process-wide bounded response cache with oldest-insertion eviction
// ABOUTME: Pure FIFO, no TTL, no recency bump on read
package memory

import (
	"log/slog"
	"sync"
)

// DefaultMaxCacheEntries bounds the response cache size
const DefaultMaxCacheEntries = 100

// ResponseCache is a thread-safe key/value cache shared by the analyzer and
// the retrieval-using handlers. Entries live until evicted by capacity
// pressure or process restart.
type ResponseCache struct {
	mu         sync.Mutex
	entries    map[string]any
	order      []string // insertion order, oldest first
	maxEntries int
	log        *slog.Logger
}

// NewResponseCache creates a cache bounded to maxEntries. A non-positive
// bound falls back to the default.
func NewResponseCache(maxEntries int) *ResponseCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	return &ResponseCache{
		entries:    make(map[string]any),
		maxEntries: maxEntries,
		log:        slog.With("component", "response_cache"),
	}
}

// Get returns the cached value for key, if present
func (c *ResponseCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if ok {
		c.log.Debug("cache hit", "key", truncateKey(key))
	} else {
		c.log.Debug("cache miss", "key", truncateKey(key))
	}
	return v, ok
}

// Set stores value under key. Overwriting an existing key keeps its original
// insertion position. When the bound is exceeded the single oldest-inserted
// entry is removed.
func (c *ResponseCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = value

	if len(c.entries) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		c.log.Info("cache limit reached, evicted oldest entry", "key", truncateKey(oldest))
	}
}

// Len returns the current number of cached entries
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// truncateKey shortens keys for log output
func truncateKey(key string) string {
	if len(key) > 50 {
		return key[:50] + "..."
	}
	return key
}
