package driven

import (
	"context"
	"time"
)

// Cache is a durable key to bytes store.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached bytes for key. The boolean is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores data under key. A key written during a run is never
	// overwritten with different content within the same run.
	Put(ctx context.Context, key string, data []byte) error

	// Stats returns per-kind entry counts and sizes.
	Stats(ctx context.Context) ([]CacheStats, error)

	// Clear removes all entries of the given kind, or every entry when kind
	// is empty. Returns the number of entries removed.
	Clear(ctx context.Context, kind string) (int, error)

	// Close releases resources held by the cache.
	Close() error
}

// CacheStats summarises the entries of one kind.
type CacheStats struct {
	Kind    string
	Entries int
	Bytes   int64
	Oldest  time.Time
	Newest  time.Time
}

// CacheEntryAge is implemented by caches that can report when an entry was
// written, which enables TTL-based invalidation.
type CacheEntryAge interface {
	// StoredAt returns the write time of key. The boolean is false on a miss.
	StoredAt(ctx context.Context, key string) (time.Time, bool, error)
}
