// Package cache stores expensive intermediate artifacts between runs,
// primarily enumerated parent-set distributions. Enumeration touches the
// scorer once per candidate parent set, which is the dominant startup cost
// when scores are computed rather than read from a table; caching the
// result keyed by the scoring inputs makes repeat runs start immediately.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a byte-oriented cache with optional per-entry expiration.
// A zero ttl on Set means the entry never expires.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under key, replacing any existing entry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key builds a cache key by hashing the parts under a readable prefix.
// The key format is prefix:hash(parts...).
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
