package repository

import (
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const DefaultPlayerCacheTTL = 6 * time.Hour

// PlayerCache remembers riot id -> puuid resolutions so a long-running
// process does not hit the account endpoint on every ingest run.
type PlayerCache struct {
	cache *ttlcache.Cache[string, string]
}

func NewPlayerCache(ttl time.Duration) *PlayerCache {
	if ttl <= 0 {
		ttl = DefaultPlayerCacheTTL
	}
	return &PlayerCache{
		cache: ttlcache.New[string, string](
			ttlcache.WithTTL[string, string](ttl),
			ttlcache.WithDisableTouchOnHit[string, string](),
		),
	}
}

func (c *PlayerCache) Get(riotID string) (string, bool) {
	item := c.cache.Get(normalizeRiotID(riotID))
	if item == nil || item.IsExpired() {
		return "", false
	}
	return item.Value(), true
}

func (c *PlayerCache) Set(riotID, puuid string) {
	c.cache.Set(normalizeRiotID(riotID), puuid, ttlcache.DefaultTTL)
}

func (c *PlayerCache) Delete(riotID string) {
	c.cache.Delete(normalizeRiotID(riotID))
}

func (c *PlayerCache) Size() int {
	return c.cache.Len()
}

// Riot ids are case-insensitive.
func normalizeRiotID(riotID string) string {
	return strings.ToLower(strings.TrimSpace(riotID))
}
