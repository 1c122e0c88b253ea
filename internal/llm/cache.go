package llm

import (
	"sync"
	"time"
)

// cacheEntry is one stored appraisal.
type cacheEntry struct {
	expiry    time.Time
	appraisal Appraisal
}

// appraisalCache remembers results per image so a photo is only sent once.
type appraisalCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
	once    sync.Once
}

// newAppraisalCache creates a cache with the given TTL.
func newAppraisalCache(ttl time.Duration) *appraisalCache {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	cache := &appraisalCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

func (c *appraisalCache) get(key string) (Appraisal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return Appraisal{}, false
	}
	return entry.appraisal, true
}

func (c *appraisalCache) set(key string, appraisal Appraisal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		appraisal: appraisal,
		expiry:    time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *appraisalCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (c *appraisalCache) Close() {
	c.once.Do(func() { close(c.stopCh) })
}
