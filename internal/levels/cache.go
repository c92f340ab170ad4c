package levels

import (
	"strings"
	"sync"

	"github.com/pinchlab/yoyak/internal/models"
)

// Cache is a process-lifetime level cache. Concurrent fetches for the same
// key may race to populate an entry; last write wins, which is safe because
// recomputation is idempotent.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*models.TextLevel
	hits   int
	misses int
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*models.TextLevel)}
}

// Get returns the cached level for key, if present.
func (c *Cache) Get(key string) (*models.TextLevel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Put stores lv under key, replacing any prior entry.
func (c *Cache) Put(key string, lv *models.TextLevel) {
	c.mu.Lock()
	c.items[key] = lv
	c.mu.Unlock()
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// DeletePrefix removes every key with the given prefix. Used to invalidate
// all levels of a document when its source changes.
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// HitRate returns the fraction of Get calls that hit.
func (c *Cache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.hits+c.misses == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.hits+c.misses)
}
