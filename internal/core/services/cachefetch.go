package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/logger"
)

// Cache kinds. The kind prefixes every cache key.
const (
	KindLogo       = "logo"
	KindGitHub     = "github"
	KindCrunchbase = "crunchbase"
)

// CacheKey derives the cache key of a logical request. The same kind and
// reference always produce the same key.
func CacheKey(kind, ref string) string {
	sum := sha256.Sum256([]byte(ref))
	return kind + "/" + hex.EncodeToString(sum[:])
}

// CacheFetcher wraps external fetches with a durable cache.
//
// On a hit the cached bytes are returned without calling compute. On a miss
// compute runs and, only when it succeeds, its result is stored before being
// returned. Failures are never cached. Concurrent misses on the same key run
// compute once.
type CacheFetcher struct {
	cache driven.Cache
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheFetcher creates a fetcher backed by cache. A ttl of zero disables
// expiry: entries stay valid until the cache is cleared.
func NewCacheFetcher(cache driven.Cache, ttl time.Duration) *CacheFetcher {
	return &CacheFetcher{
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

// FetchOrCompute returns the cached bytes for (kind, ref), computing and
// storing them on a miss.
func (f *CacheFetcher) FetchOrCompute(
	ctx context.Context,
	kind, ref string,
	compute func(ctx context.Context) ([]byte, error),
) ([]byte, error) {
	key := CacheKey(kind, ref)
	if data, ok := f.lookup(ctx, key); ok {
		f.hits.Add(1)
		return data, nil
	}

	v, err, _ := f.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if data, ok := f.lookup(ctx, key); ok {
			f.hits.Add(1)
			return data, nil
		}

		f.misses.Add(1)
		data, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		if err := f.cache.Put(ctx, key, data); err != nil {
			logger.WithFields(logger.Fields{"kind": kind, "ref": ref}).
				Error(err, "failed to write cache entry")
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Cached returns the cached bytes for (kind, ref) without computing them.
func (f *CacheFetcher) Cached(ctx context.Context, kind, ref string) ([]byte, bool) {
	data, ok := f.lookup(ctx, CacheKey(kind, ref))
	if ok {
		f.hits.Add(1)
	}
	return data, ok
}

// Hits returns the number of requests served from the cache.
func (f *CacheFetcher) Hits() int64 {
	return f.hits.Load()
}

// Misses returns the number of requests that required an external fetch.
func (f *CacheFetcher) Misses() int64 {
	return f.misses.Load()
}

// lookup reads key, treating read errors and expired entries as misses.
func (f *CacheFetcher) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		logger.WithFields(logger.Fields{"key": key}).Error(err, "failed to read cache entry")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	if f.ttl > 0 {
		if aged, isAged := f.cache.(driven.CacheEntryAge); isAged {
			storedAt, found, err := aged.StoredAt(ctx, key)
			if err == nil && found && f.now().Sub(storedAt) > f.ttl {
				logger.Debug("cache entry %s expired (stored at %s)", key, storedAt.Format(time.RFC3339))
				return nil, false
			}
		}
	}
	return data, true
}
