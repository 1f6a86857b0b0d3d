package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GLADI8R/landscape2/internal/adapters/driven/cache"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.Cache         = (*Store)(nil)
	_ driven.CacheEntryAge = (*Store)(nil)
)

// Store is a durable cache keeping one file per entry.
type Store struct {
	mu   sync.RWMutex
	dir  string
	lock *cache.DirLock
}

// NewStore opens the cache directory, creating it if needed, and locks it.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory not provided")
	}

	lock, err := cache.AcquireLock(dir)
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, lock: lock}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the cached bytes for key.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}
	return data, true, nil
}

// Put stores data under key atomically.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache kind directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp cache entry: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing cache entry: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("committing cache entry: %w", err)
	}
	return nil
}

// StoredAt returns the modification time of the entry file.
func (s *Store) StoredAt(_ context.Context, key string) (time.Time, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return time.Time{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("reading cache entry info: %w", err)
	}
	return info.ModTime(), true, nil
}

// Stats returns per-kind entry counts and sizes, sorted by kind.
func (s *Store) Stats(_ context.Context) ([]driven.CacheStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kinds, err := s.kinds()
	if err != nil {
		return nil, err
	}

	stats := make([]driven.CacheStats, 0, len(kinds))
	for _, kind := range kinds {
		st := driven.CacheStats{Kind: kind}
		err := s.walkKind(kind, func(_ string, info fs.FileInfo) error {
			st.Entries++
			st.Bytes += info.Size()
			mod := info.ModTime()
			if st.Oldest.IsZero() || mod.Before(st.Oldest) {
				st.Oldest = mod
			}
			if mod.After(st.Newest) {
				st.Newest = mod
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// Clear removes the entries of kind, or every entry when kind is empty.
func (s *Store) Clear(_ context.Context, kind string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kinds := []string{kind}
	if kind == "" {
		var err error
		if kinds, err = s.kinds(); err != nil {
			return 0, err
		}
	}

	removed := 0
	for _, k := range kinds {
		err := s.walkKind(k, func(path string, _ fs.FileInfo) error {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("removing cache entry: %w", err)
			}
			removed++
			return nil
		})
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// Close releases the directory lock.
func (s *Store) Close() error {
	return s.lock.Release()
}

func (s *Store) path(key string) (string, error) {
	kind, name, err := cache.SplitKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, kind, name), nil
}

// kinds lists the kind sub-directories, sorted.
func (s *Store) kinds() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}

	var kinds []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			kinds = append(kinds, e.Name())
		}
	}
	sort.Strings(kinds)
	return kinds, nil
}

// walkKind calls fn for every committed entry of kind. A missing kind
// directory has no entries.
func (s *Store) walkKind(kind string, fn func(path string, info fs.FileInfo) error) error {
	dir := filepath.Join(s.dir, kind)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading cache kind directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return fmt.Errorf("reading cache entry info: %w", err)
		}
		if err := fn(filepath.Join(dir, e.Name()), info); err != nil {
			return err
		}
	}
	return nil
}
