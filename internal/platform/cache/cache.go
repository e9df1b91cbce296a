package cache

import (
	"fmt"
	"sync"
)

// Versioned is a namespace-versioned key/value store.
// Invalidation never enumerates keys: every namespace carries a generation
// counter that is embedded in the physical storage key, so BumpVersion makes
// all prior entries under that namespace unreachable in O(1).
type Versioned struct {
	mu       sync.RWMutex
	versions map[string]uint64
	entries  map[string]map[string]any
}

func NewVersioned() *Versioned {
	return &Versioned{
		versions: make(map[string]uint64),
		entries:  make(map[string]map[string]any),
	}
}

func (c *Versioned) Get(namespace, key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bucket, exists := c.entries[c.bucketKey(namespace)]
	if !exists {
		return nil, false
	}
	value, exists := bucket[key]
	return value, exists
}

func (c *Versioned) Set(namespace, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	physical := c.bucketKey(namespace)
	bucket, exists := c.entries[physical]
	if !exists {
		bucket = make(map[string]any)
		c.entries[physical] = bucket
	}
	bucket[key] = value
}

// BumpVersion invalidates every entry logically scoped under namespace.
func (c *Versioned) BumpVersion(namespace string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, c.bucketKey(namespace))
	c.versions[namespace]++
}

func (c *Versioned) Version(namespace string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.versions[namespace]
}

func (c *Versioned) bucketKey(namespace string) string {
	return fmt.Sprintf("%s:v%d", namespace, c.versions[namespace])
}
