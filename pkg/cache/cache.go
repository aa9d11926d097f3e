package cache

import "time"

// Cache is the interface for caching token metadata.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns (value, true) if found, (nil, false) if not found.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with a TTL.
	Set(key string, value interface{}, ttl time.Duration) bool

	// Wait blocks until all pending writes have been applied.
	Wait()

	// Close closes the cache and releases resources.
	Close()
}
