// Package cache holds helpers shared by the durable cache adapters.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// LockFileName is the name of the lock file created in the cache directory.
const LockFileName = ".lock"

// DirLock is an exclusive process-level lock on a cache directory.
type DirLock struct {
	lock *flock.Flock
}

// AcquireLock creates dir if needed and locks it. It fails with
// domain.ErrCacheLocked when another process holds the lock.
func AcquireLock(dir string) (*DirLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCacheLocked, dir)
	}
	return &DirLock{lock: lock}, nil
}

// Release unlocks the directory.
func (l *DirLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

// SplitKey splits a cache key into its kind and name, rejecting keys that
// could escape the cache directory.
func SplitKey(key string) (kind, name string, err error) {
	kind, name, ok := strings.Cut(key, "/")
	if !ok || kind == "" || name == "" ||
		strings.ContainsAny(name, `/\`) || strings.HasPrefix(kind, ".") || strings.HasPrefix(name, ".") {
		return "", "", fmt.Errorf("%w: invalid cache key %q", domain.ErrInvalidInput, key)
	}
	return kind, name, nil
}
