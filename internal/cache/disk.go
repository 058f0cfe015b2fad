package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists fetched bodies across runs so repeated crawls over the
// same date window do not re-download unchanged disclosures.
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a disk cache rooted at dir.
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Entry     Entry     `json:"entry"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c *DiskCache) Get(key string) (Entry, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return Entry{}, false
	}

	var de diskEntry
	if err := json.Unmarshal(data, &de); err != nil {
		return Entry{}, false
	}

	if time.Now().After(de.ExpiresAt) {
		_ = os.Remove(c.path(key))
		return Entry{}, false
	}

	return de.Entry, true
}

func (c *DiskCache) Set(key string, entry Entry, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(diskEntry{Entry: entry, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".cache")
}
