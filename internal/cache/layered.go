package cache

import "time"

// LayeredCache fronts the disk cache with a memory layer; disk hits are
// promoted to memory.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds the standard memory+disk stack.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

func (c *LayeredCache) Get(key string) (Entry, bool) {
	if entry, found := c.memory.Get(key); found {
		return entry, true
	}
	if entry, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, entry, 0)
		return entry, true
	}
	return Entry{}, false
}

func (c *LayeredCache) Set(key string, entry Entry, ttl time.Duration) error {
	if err := c.memory.Set(key, entry, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, entry, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	_ = c.disk.Delete(key)
	return nil
}

func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
