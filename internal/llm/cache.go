package llm

import (
	"sync"
	"time"

	"github.com/ndhuy/tienoi/internal/model"
)

// cacheEntry is one cached parse result.
type cacheEntry struct {
	expiry       time.Time
	transactions []model.ParsedTransaction
}

// responseCache keeps recent parse results so a re-sent message does not
// cost a second API round trip.
type responseCache struct {
	entries map[string]cacheEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

func newResponseCache(ttl time.Duration) *responseCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *responseCache) get(key string) ([]model.ParsedTransaction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return nil, false
	}
	return entry.transactions, true
}

func (c *responseCache) set(key string, transactions []model.ParsedTransaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Opportunistic eviction keeps the map from growing without bound.
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = cacheEntry{
		transactions: transactions,
		expiry:       now.Add(c.ttl),
	}
}
