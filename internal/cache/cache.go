package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Entry is one cached fetch: the response body plus the metadata needed to
// reuse it without re-contacting the source.
type Entry struct {
	Body        []byte    `json:"body"`
	ContentType string    `json:"content_type,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Cache stores fetched document bodies keyed by URL hash.
type Cache interface {
	Get(key string) (Entry, bool)
	Set(key string, entry Entry, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "irdigest:v1:" + hex.EncodeToString(sum[:])
}
