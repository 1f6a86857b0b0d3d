package services

import (
	"context"
	"fmt"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
)

// Ensure CacheService implements the interface.
var _ driving.CacheService = (*CacheService)(nil)

// KnownKinds lists the cache kinds written by the build.
var KnownKinds = []string{KindLogo, KindGitHub, KindCrunchbase}

// CacheService manages the durable cache.
type CacheService struct {
	cache driven.Cache
}

// NewCacheService creates a cache service.
func NewCacheService(cache driven.Cache) *CacheService {
	return &CacheService{cache: cache}
}

// Stats returns a summary per kind.
func (s *CacheService) Stats(ctx context.Context) ([]driving.CacheKindStats, error) {
	stats, err := s.cache.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("read cache stats: %w", err)
	}

	result := make([]driving.CacheKindStats, 0, len(stats))
	for _, st := range stats {
		result = append(result, driving.CacheKindStats{
			Kind:    st.Kind,
			Entries: st.Entries,
			Bytes:   st.Bytes,
			Oldest:  st.Oldest,
			Newest:  st.Newest,
		})
	}
	return result, nil
}

// Clear removes cached entries of kind, or all entries when kind is empty.
func (s *CacheService) Clear(ctx context.Context, kind string) (int, error) {
	if kind != "" && !isKnownKind(kind) {
		return 0, fmt.Errorf("%w: unknown cache kind %q", domain.ErrInvalidInput, kind)
	}
	n, err := s.cache.Clear(ctx, kind)
	if err != nil {
		return n, fmt.Errorf("clear cache: %w", err)
	}
	return n, nil
}

func isKnownKind(kind string) bool {
	for _, k := range KnownKinds {
		if k == kind {
			return true
		}
	}
	return false
}
