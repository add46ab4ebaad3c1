package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching search-provider responses.
// Cached entries never outlive the process; fetched patent documents are
// never cached.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a provider query
func Key(query string) string {
	hash := sha256.Sum256([]byte(query))
	return "patentlens:v1:" + hex.EncodeToString(hash[:])
}
