// Package doccache serves the generated document file through a small TTL
// cache, so the serving binary does not hit the filesystem on every poll.
package doccache

import (
	"os"
	"sync"
	"time"
)

// Cache reads one file and keeps its bytes for TTL. A TTL of zero or less
// disables caching; every Load then reads the file directly.
type Cache struct {
	Path string
	TTL  time.Duration

	mu       sync.RWMutex
	data     []byte
	loadedAt time.Time
}

// Load returns the current document bytes. A fresh cached copy is served as
// is; after expiry the file is re-read. When the re-read fails but an
// earlier copy exists, the earlier copy is served rather than failing
// entirely (the generate run rewrites the file in place).
func (c *Cache) Load() ([]byte, error) {
	if c.TTL <= 0 {
		return os.ReadFile(c.Path)
	}

	now := time.Now()

	c.mu.RLock()
	if c.data != nil && now.Sub(c.loadedAt) < c.TTL {
		data := c.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(c.Path)
	if err != nil {
		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.data != nil {
			return c.data, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.data = data
	c.loadedAt = now
	c.mu.Unlock()

	return data, nil
}
