package cms

import (
	"sync"
	"time"
)

type ttlCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]cacheEntry
}

type cacheEntry struct {
	page    LegalPage
	expires time.Time
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{ttl: ttl, now: time.Now, items: map[string]cacheEntry{}}
}

func (c *ttlCache) get(key string) (LegalPage, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return LegalPage{}, false
	}
	return entry.page, true
}

func (c *ttlCache) put(key string, page LegalPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{page: page, expires: c.now().Add(c.ttl)}
}
