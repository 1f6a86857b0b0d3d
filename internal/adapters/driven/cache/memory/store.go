package memory

import (
	"context"
	"sort"
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

type entry struct {
	kind     string
	data     []byte
	storedAt time.Time
}

// Store is an in-memory implementation of driven.Cache.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewStore creates a new empty in-memory cache.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached bytes for key.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	if _, _, err := cache.SplitKey(key); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

// Put stores a copy of data under key.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	kind, _, err := cache.SplitKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{
		kind:     kind,
		data:     append([]byte(nil), data...),
		storedAt: s.now(),
	}
	return nil
}

// StoredAt returns the time key was written.
func (s *Store) StoredAt(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return time.Time{}, false, nil
	}
	return e.storedAt, true, nil
}

// Stats returns per-kind entry counts and sizes, sorted by kind.
func (s *Store) Stats(_ context.Context) ([]driven.CacheStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byKind := make(map[string]*driven.CacheStats)
	for _, e := range s.entries {
		st, ok := byKind[e.kind]
		if !ok {
			st = &driven.CacheStats{Kind: e.kind}
			byKind[e.kind] = st
		}
		st.Entries++
		st.Bytes += int64(len(e.data))
		if st.Oldest.IsZero() || e.storedAt.Before(st.Oldest) {
			st.Oldest = e.storedAt
		}
		if e.storedAt.After(st.Newest) {
			st.Newest = e.storedAt
		}
	}

	stats := make([]driven.CacheStats, 0, len(byKind))
	for _, st := range byKind {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Kind < stats[j].Kind })
	return stats, nil
}

// Clear removes the entries of kind, or every entry when kind is empty.
func (s *Store) Clear(_ context.Context, kind string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if kind == "" || e.kind == kind {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
