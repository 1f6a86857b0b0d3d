package cli

import (
	"context"
	"time"

	"github.com/GLADI8R/landscape2/internal/adapters/driven/watch"
	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
)

// mockBuildService implements driving.BuildService for testing.
type mockBuildService struct {
	report *driving.BuildReport
	err    error
	calls  int
	onCall func(n int)
}

func (m *mockBuildService) Build(_ context.Context) (*driving.BuildReport, error) {
	m.calls++
	if m.onCall != nil {
		m.onCall(m.calls)
	}
	return m.report, m.err
}

// mockWatcher implements InputWatcher for testing.
type mockWatcher struct {
	changes chan watch.Change
	err     error
	closed  bool
}

func (m *mockWatcher) Watch(_ context.Context) (<-chan watch.Change, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.changes, nil
}

func (m *mockWatcher) Close() error {
	m.closed = true
	return nil
}

// mockValidateService implements driving.ValidateService for testing.
type mockValidateService struct {
	err error
}

func (m *mockValidateService) ValidateData(_ context.Context) error {
	return m.err
}

// mockCacheService implements driving.CacheService for testing.
type mockCacheService struct {
	stats       []driving.CacheKindStats
	cleared     int
	clearedKind string
	err         error
}

func (m *mockCacheService) Stats(_ context.Context) ([]driving.CacheKindStats, error) {
	return m.stats, m.err
}

func (m *mockCacheService) Clear(_ context.Context, kind string) (int, error) {
	m.clearedKind = kind
	return m.cleared, m.err
}

// mockCatalogService implements driving.CatalogService for testing.
type mockCatalogService struct{}

func (m *mockCatalogService) QueryItems(_ context.Context, _ driving.ItemQuery) ([]domain.Item, error) {
	return nil, nil
}

func (m *mockCatalogService) GetItem(_ context.Context, _ string) (*domain.Item, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalogService) Categories(_ context.Context) ([]domain.Category, error) {
	return nil, nil
}

func setupServices(build driving.BuildService, validate driving.ValidateService, cache driving.CacheService) func() {
	oldBuild, oldValidate, oldCache := buildService, validateService, cacheService
	oldFactory := factory
	buildService = build
	validateService = validate
	cacheService = cache
	factory = nil
	return func() {
		buildService = oldBuild
		validateService = oldValidate
		cacheService = oldCache
		factory = oldFactory
	}
}

var sampleReport = &driving.BuildReport{
	Items:             12,
	LogosPrepared:     11,
	LogosFailed:       1,
	GitHubRecords:     8,
	GitHubFailed:      2,
	CrunchbaseRecords: 5,
	Duration:          1500 * time.Millisecond,
}
