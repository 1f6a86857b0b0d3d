package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// fakeFetcher serves canned bodies by URL and counts requests.
type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string][]byte
	errs   map[string]error
	calls  map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		bodies: make(map[string][]byte),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, fmt.Errorf("unexpected status code 404 fetching %s", url)
	}
	return body, nil
}

func (f *fakeFetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

// fakeLogoReader serves local logos from memory.
type fakeLogoReader struct {
	files map[string][]byte
	reads atomic.Int32
}

func (f *fakeLogoReader) ReadLogo(_ context.Context, name string) ([]byte, error) {
	f.reads.Add(1)
	data, ok := f.files[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, os.ErrNotExist)
	}
	return data, nil
}

// fakeGitHub returns a record per repository URL unless configured to fail.
type fakeGitHub struct {
	fail  map[string]error
	calls sync.Map
}

func (f *fakeGitHub) Repository(_ context.Context, repoURL string) (*domain.GitHubData, error) {
	counter, _ := f.calls.LoadOrStore(repoURL, new(atomic.Int32))
	counter.(*atomic.Int32).Add(1)
	if err := f.fail[repoURL]; err != nil {
		return nil, err
	}
	return &domain.GitHubData{URL: repoURL, Stars: len(repoURL)}, nil
}

func (f *fakeGitHub) Calls(repoURL string) int32 {
	counter, ok := f.calls.Load(repoURL)
	if !ok {
		return 0
	}
	return counter.(*atomic.Int32).Load()
}

// fakeCrunchbase returns a record per organization URL.
type fakeCrunchbase struct {
	fail  map[string]error
	calls atomic.Int32
}

func (f *fakeCrunchbase) Organization(_ context.Context, orgURL string) (*domain.CrunchbaseData, error) {
	f.calls.Add(1)
	if err := f.fail[orgURL]; err != nil {
		return nil, err
	}
	return &domain.CrunchbaseData{Name: "org " + orgURL, Funding: 100}, nil
}

// fakeDataSource serves fixed landscape data, settings and guide.
type fakeDataSource struct {
	data        *domain.LandscapeData
	settings    *domain.Settings
	guide       *domain.Guide
	dataErr     error
	settingsErr error
	guideErr    error
}

func (s *fakeDataSource) LandscapeData(context.Context) (*domain.LandscapeData, error) {
	return s.data, s.dataErr
}

func (s *fakeDataSource) Settings(context.Context) (*domain.Settings, error) {
	return s.settings, s.settingsErr
}

func (s *fakeDataSource) Guide(context.Context) (*domain.Guide, error) {
	return s.guide, s.guideErr
}

// fakeAssets lists a fixed set of asset paths.
type fakeAssets struct {
	paths []string
}

func (a *fakeAssets) List() ([]string, error) {
	return a.paths, nil
}

func (a *fakeAssets) Read(path string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

// fakePublisher records the data it was asked to publish.
type fakePublisher struct {
	prepared   bool
	published  *domain.LandscapeData
	settings   *domain.Settings
	guide      *domain.Guide
	publishErr error
}

func (p *fakePublisher) Prepare() error {
	p.prepared = true
	return nil
}

func (p *fakePublisher) Publish(
	_ context.Context,
	data *domain.LandscapeData,
	settings *domain.Settings,
	guide *domain.Guide,
) error {
	p.published = data
	p.settings = settings
	p.guide = guide
	return p.publishErr
}

// fakeImageStore keeps written images in memory.
type fakeImageStore struct {
	mu     sync.Mutex
	images map[string][]byte
}

func (s *fakeImageStore) WriteImage(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.images == nil {
		s.images = make(map[string][]byte)
	}
	s.images[name] = data
	return "images/" + name, nil
}

// fakeDatasetReader serves fixed landscape data and counts reads.
type fakeDatasetReader struct {
	data  *domain.LandscapeData
	err   error
	reads int
}

func (r *fakeDatasetReader) Read(context.Context) (*domain.LandscapeData, error) {
	r.reads++
	return r.data, r.err
}

// newTestData builds landscape data from items, assigning their identities.
func newTestData(items ...domain.Item) *domain.LandscapeData {
	categories := map[string][]string{}
	for _, item := range items {
		categories[item.Category] = append(categories[item.Category], item.Subcategory)
	}
	var cats []domain.Category
	for name, subs := range categories {
		cats = append(cats, domain.Category{Name: name, Subcategories: subs})
	}
	data, err := domain.NewLandscapeData(cats, items)
	if err != nil {
		panic(err)
	}
	return data
}
