// Package sqlite provides a SQLite-backed implementation of the durable
// build cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. Entries live in the cache_entries table keyed by cache key.
//
// # Data Location
//
// The database is stored at <cache dir>/cache.db. The cache directory is
// locked for the lifetime of the store.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
