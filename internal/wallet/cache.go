package wallet

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// cachedBalanceEntry wraps a balance with version metadata for cache invalidation
type cachedBalanceEntry struct {
	Version  string    `json:"version"`
	Balance  float64   `json:"balance"`
	CachedAt time.Time `json:"cached_at"`
}

// balanceCache is an in-memory LRU cache for wallet balances with time-based
// expiration, so repeated balance queries between push updates skip the node.
type balanceCache struct {
	lru *expirable.LRU[string, *cachedBalanceEntry]
}

func newBalanceCache(size int, ttl time.Duration) *balanceCache {
	return &balanceCache{
		lru: expirable.NewLRU[string, *cachedBalanceEntry](size, nil, ttl),
	}
}

// Get retrieves a cached balance. Entries with a mismatched schema version
// are removed and reported as misses.
func (c *balanceCache) Get(address string) (float64, bool) {
	entry, found := c.lru.Get(address)
	if !found {
		return 0, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(address)
		return 0, false
	}

	return entry.Balance, true
}

// Set stores a balance with the current schema version.
func (c *balanceCache) Set(address string, balance float64) {
	c.lru.Add(address, &cachedBalanceEntry{
		Version:  CacheSchemaVersion,
		Balance:  balance,
		CachedAt: time.Now(),
	})
}

// Invalidate removes one address from the cache.
func (c *balanceCache) Invalidate(address string) {
	c.lru.Remove(address)
}

// Clear removes all entries.
func (c *balanceCache) Clear() {
	c.lru.Purge()
}
