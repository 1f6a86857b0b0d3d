package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateItem indicates two items resolve to the same identity.
	ErrDuplicateItem = errors.New("duplicate item")

	// ErrFrozen indicates the landscape data has been handed off for
	// serialization and can no longer be mutated.
	ErrFrozen = errors.New("landscape data is frozen")

	// Build Errors.

	// ErrAssetsMissing indicates the web application assets were not built.
	ErrAssetsMissing = errors.New("web assets not found, please make sure they have been built")

	// ErrCacheLocked indicates another build holds the cache directory.
	ErrCacheLocked = errors.New("cache directory is locked by another build")

	// ErrSourceUnavailable indicates an external data source is not configured
	// (missing token or API key). Collection falls back to cached records.
	ErrSourceUnavailable = errors.New("external source unavailable")
)
