package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/GLADI8R/landscape2/internal/adapters/driven/cache"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/cache/sqlite/migrations"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

// DatabaseName is the file name of the cache database.
const DatabaseName = "cache.db"

// Ensure Store implements the interfaces.
var (
	_ driven.Cache         = (*Store)(nil)
	_ driven.CacheEntryAge = (*Store)(nil)
)

// Store is a durable cache backed by a SQLite database.
type Store struct {
	db   *sql.DB
	path string
	lock *cache.DirLock
}

// NewStore opens (or creates) the cache database inside dir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory not provided")
	}

	lock, err := cache.AcquireLock(dir)
	if err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, DatabaseName)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		_ = lock.Release()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		lock: lock,
	}

	if err := s.migrate(migrations.FS); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection and releases the directory lock.
func (s *Store) Close() error {
	dbErr := s.db.Close()
	lockErr := s.lock.Release()
	return errors.Join(dbErr, lockErr)
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached bytes for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if _, _, err := cache.SplitKey(key); err != nil {
		return nil, false, err
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM cache_entries WHERE key = ?", key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("querying cache entry: %w", err)
	}
	return data, true, nil
}

// Put stores data under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	kind, _, err := cache.SplitKey(key)
	if err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, kind, data, size, stored_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			size = excluded.size,
			stored_at = excluded.stored_at
	`, key, kind, data, len(data), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("saving cache entry: %w", err)
	}
	return nil
}

// StoredAt returns the time the entry was written.
func (s *Store) StoredAt(ctx context.Context, key string) (time.Time, bool, error) {
	var nanos int64
	err := s.db.QueryRowContext(ctx, "SELECT stored_at FROM cache_entries WHERE key = ?", key).Scan(&nanos)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("querying cache entry: %w", err)
	}
	return time.Unix(0, nanos), true, nil
}

// Stats returns per-kind entry counts and sizes, sorted by kind.
func (s *Store) Stats(ctx context.Context) ([]driven.CacheStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*), COALESCE(SUM(size), 0), MIN(stored_at), MAX(stored_at)
		FROM cache_entries
		GROUP BY kind
		ORDER BY kind
	`)
	if err != nil {
		return nil, fmt.Errorf("querying cache stats: %w", err)
	}
	defer rows.Close()

	var stats []driven.CacheStats
	for rows.Next() {
		var (
			st             driven.CacheStats
			oldest, newest int64
		)
		if err := rows.Scan(&st.Kind, &st.Entries, &st.Bytes, &oldest, &newest); err != nil {
			return nil, fmt.Errorf("scanning cache stats: %w", err)
		}
		st.Oldest = time.Unix(0, oldest)
		st.Newest = time.Unix(0, newest)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// Clear removes the entries of kind, or every entry when kind is empty.
func (s *Store) Clear(ctx context.Context, kind string) (int, error) {
	var (
		res sql.Result
		err error
	)
	if kind == "" {
		res, err = s.db.ExecContext(ctx, "DELETE FROM cache_entries")
	} else {
		res, err = s.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE kind = ?", kind)
	}
	if err != nil {
		return 0, fmt.Errorf("deleting cache entries: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted cache entries: %w", err)
	}
	return int(n), nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_cache_entries.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
