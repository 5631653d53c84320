package assets

import "sync"

// Cache maps asset paths to their slots.
type Cache struct {
	slots map[string]*Slot
	mu    sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		slots: make(map[string]*Slot),
	}
}

// Get retrieves a slot from cache.
func (c *Cache) Get(path string) (*Slot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[path]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return s, ok
}

// Set stores a slot in cache.
func (c *Cache) Set(path string, s *Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[path] = s
}

// Len returns the number of cached slots.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.slots)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = make(map[string]*Slot)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
