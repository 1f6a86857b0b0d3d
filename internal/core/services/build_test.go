package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cachefile "github.com/GLADI8R/landscape2/internal/adapters/driven/cache/file"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/cache/memory"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/output"
	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
	"github.com/GLADI8R/landscape2/internal/normalisers/svg"
)

type buildFixture struct {
	assets     *fakeAssets
	source     *fakeDataSource
	publisher  *fakePublisher
	fetcher    *fakeFetcher
	github     *fakeGitHub
	crunchbase *fakeCrunchbase
	images     *fakeImageStore
}

func newBuildFixture() *buildFixture {
	fetcher := newFakeFetcher()
	fetcher.bodies["https://logos.example/a.svg"] = []byte("<svg>a</svg>")
	fetcher.bodies["https://img.example/favicon.png"] = []byte("png")

	data := newTestData(
		domain.Item{
			Name: "Alpha", Category: "Runtime", Subcategory: "Container",
			Logo:          "https://logos.example/a.svg",
			Maturity:      "graduated",
			Repositories:  []domain.Repository{{URL: "https://github.com/org/alpha", Primary: true}},
			CrunchbaseURL: "https://www.crunchbase.com/organization/org",
		},
		domain.Item{
			Name: "Beta", Category: "Members", Subcategory: "Gold",
			Logo:          "https://logos.example/missing.svg",
			CrunchbaseURL: "https://www.crunchbase.com/organization/org",
		},
	)
	settings := &domain.Settings{
		Foundation:      "Test Foundation",
		MembersCategory: "Members",
		FeaturedItems: []domain.FeaturedItemRule{{
			Field:   domain.FeaturedFieldMaturity,
			Options: []domain.FeaturedItemRuleOption{{Value: "graduated", Label: "Graduated", Order: 1}},
		}},
		Images: domain.Images{Favicon: "https://img.example/favicon.png"},
	}

	return &buildFixture{
		assets:     &fakeAssets{paths: []string{"assets/app.js", "index.html"}},
		source:     &fakeDataSource{data: data, settings: settings},
		publisher:  &fakePublisher{},
		fetcher:    fetcher,
		github:     &fakeGitHub{},
		crunchbase: &fakeCrunchbase{},
		images:     &fakeImageStore{},
	}
}

func (f *buildFixture) service(t *testing.T) *BuildService {
	t.Helper()
	processor, _ := newTestLogoProcessor(t, LogosSource{}, f.fetcher)
	return f.serviceWith(t, memory.NewStore(), processor)
}

func (f *buildFixture) serviceWith(t *testing.T, store driven.Cache, processor *LogoProcessor) *BuildService {
	t.Helper()
	cache := NewCacheFetcher(store, 0)
	return NewBuildService(
		f.assets,
		f.source,
		f.publisher,
		NewImagesPreparer(f.fetcher, f.images),
		processor,
		NewGitHubCollector(f.github, cache, 2),
		NewCrunchbaseCollector(f.crunchbase, cache, 2),
	)
}

func TestBuildService_Build(t *testing.T) {
	captureLogs(t)
	f := newBuildFixture()

	report, err := f.service(t).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Items)
	assert.Equal(t, 1, report.LogosPrepared)
	assert.Equal(t, 1, report.LogosFailed)
	assert.Equal(t, 1, report.GitHubRecords)
	assert.Equal(t, 1, report.CrunchbaseRecords)
	assert.Positive(t, report.Duration)

	assert.True(t, f.publisher.prepared)
	published := f.publisher.published
	require.NotNil(t, published)
	assert.True(t, published.Frozen())

	alpha, beta := published.Items[0], published.Items[1]
	assert.Equal(t, "logos/"+digestOf("<svg>a</svg>")+".svg", alpha.Logo)
	assert.Empty(t, beta.Logo)
	require.NotNil(t, alpha.Featured)
	assert.Equal(t, "Graduated", alpha.Featured.Label)
	assert.Equal(t, "Gold", beta.MemberSubcategory)
	require.NotNil(t, alpha.Repositories[0].GitHubData)
	assert.Equal(t, "https://github.com/org/alpha", alpha.Repositories[0].GitHubData.URL)
	require.NotNil(t, alpha.CrunchbaseData)
	assert.Same(t, alpha.CrunchbaseData, beta.CrunchbaseData)

	assert.Equal(t, "images/favicon.png", f.publisher.settings.Images.Favicon)
	assert.Equal(t, []byte("png"), f.images.images["favicon.png"])
	assert.False(t, report.IncludesGuide)
	assert.Nil(t, f.publisher.guide)
}

func TestBuildService_Guide(t *testing.T) {
	captureLogs(t)
	f := newBuildFixture()
	f.source.guide = &domain.Guide{Categories: []domain.GuideCategory{{Category: "Runtime", Content: "<p>Run</p>"}}}

	report, err := f.service(t).Build(context.Background())
	require.NoError(t, err)

	assert.True(t, report.IncludesGuide)
	assert.Same(t, f.source.guide, f.publisher.guide)
}

func TestBuildService_InvalidGuide(t *testing.T) {
	f := newBuildFixture()
	f.source.guideErr = errors.New("guide category 0 has no name")

	_, err := f.service(t).Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load landscape guide")
	assert.Nil(t, f.publisher.published)
}

func TestBuildService_SecondRunServedFromCacheDir(t *testing.T) {
	captureLogs(t)
	f := newBuildFixture()
	cacheDir := t.TempDir()
	layout := output.NewLayout(t.TempDir())
	require.NoError(t, layout.Prepare())

	run := func() *driving.BuildReport {
		store, err := cachefile.NewStore(cacheDir)
		require.NoError(t, err)
		defer func() { require.NoError(t, store.Close()) }()

		processor := NewLogoProcessor(LogosSource{}, f.fetcher, NewCacheFetcher(store, 0),
			svg.New(), output.NewLogoStore(layout), 2)
		// Each run gets fresh copies of the inputs, as a new process would.
		fresh := newBuildFixture()
		f.source.data, f.source.settings = fresh.source.data, fresh.source.settings

		report, err := f.serviceWith(t, store, processor).Build(context.Background())
		require.NoError(t, err)
		return report
	}

	first := run()
	second := run()

	assert.Equal(t, 1, f.fetcher.Calls("https://logos.example/a.svg"))
	assert.Equal(t, int32(1), f.github.Calls("https://github.com/org/alpha"))
	assert.Equal(t, int32(1), f.crunchbase.calls.Load())
	assert.Equal(t, first.LogosPrepared, second.LogosPrepared)
	assert.Equal(t, first.GitHubRecords, second.GitHubRecords)
	assert.Equal(t, first.CrunchbaseRecords, second.CrunchbaseRecords)
	assert.Equal(t, "logos/"+digestOf("<svg>a</svg>")+".svg", f.publisher.published.Items[0].Logo)
}

func TestBuildService_MissingAssets(t *testing.T) {
	f := newBuildFixture()
	f.assets.paths = []string{"index.html"}

	_, err := f.service(t).Build(context.Background())

	assert.ErrorIs(t, err, domain.ErrAssetsMissing)
	assert.False(t, f.publisher.prepared)
}

func TestBuildService_InvalidData(t *testing.T) {
	f := newBuildFixture()
	f.source.dataErr = errors.New("yaml: line 3: mapping values are not allowed")

	_, err := f.service(t).Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load landscape data")
	assert.Nil(t, f.publisher.published)
}

func TestBuildService_InvalidSettings(t *testing.T) {
	f := newBuildFixture()
	f.source.settingsErr = errors.New("foundation not provided")

	_, err := f.service(t).Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load landscape settings")
}

func TestBuildService_ImageFailureAbortsBuild(t *testing.T) {
	captureLogs(t)
	f := newBuildFixture()
	f.source.settings.Images.HeaderLogo = "https://img.example/missing.svg"

	_, err := f.service(t).Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "prepare settings images")
}

func TestBuildService_ExternalFailuresDoNotAbort(t *testing.T) {
	captureLogs(t)
	f := newBuildFixture()
	f.github.fail = map[string]error{"https://github.com/org/alpha": context.DeadlineExceeded}
	f.crunchbase.fail = map[string]error{"https://www.crunchbase.com/organization/org": errors.New("boom")}

	report, err := f.service(t).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.GitHubFailed)
	assert.Equal(t, 1, report.CrunchbaseFailed)
	assert.Nil(t, f.publisher.published.Items[0].Repositories[0].GitHubData)
	assert.Nil(t, f.publisher.published.Items[0].CrunchbaseData)
}

func TestBuildService_PublishError(t *testing.T) {
	captureLogs(t)
	f := newBuildFixture()
	f.publisher.publishErr = errors.New("disk full")

	_, err := f.service(t).Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCheckCompleteness(t *testing.T) {
	data := newTestData(
		domain.Item{Name: "A", Category: "C", Subcategory: "S"},
		domain.Item{Name: "B", Category: "C", Subcategory: "S"},
	)
	ids := data.IDs()

	assert.NoError(t, checkCompleteness(ids, data))

	data.Items = data.Items[:1]
	assert.Error(t, checkCompleteness(ids, data))
}
