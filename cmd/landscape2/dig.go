package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/dig"

	cachefile "github.com/GLADI8R/landscape2/internal/adapters/driven/cache/file"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/cache/memory"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/cache/sqlite"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/config/file"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/httpfetch"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/landscape"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/output"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/watch"
	"github.com/GLADI8R/landscape2/internal/adapters/driving/cli"
	"github.com/GLADI8R/landscape2/internal/connectors/crunchbase"
	"github.com/GLADI8R/landscape2/internal/connectors/github"
	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
	"github.com/GLADI8R/landscape2/internal/core/services"
	"github.com/GLADI8R/landscape2/internal/normalisers/svg"
	"github.com/GLADI8R/landscape2/web"
)

// newServices wires the services for cfg. It is the cli.ServiceFactory.
func newServices(cfg *file.Config) (*cli.Services, error) {
	container := dig.New()
	if err := registerProviders(container, cfg); err != nil {
		return nil, err
	}

	svc := &cli.Services{}
	err := container.Invoke(func(
		build driving.BuildService,
		validate driving.ValidateService,
		cacheSvc driving.CacheService,
		catalog driving.CatalogService,
		watcher *watch.Watcher,
		cache driven.Cache,
	) {
		svc.Build = build
		svc.Validate = validate
		svc.Cache = cacheSvc
		svc.Catalog = catalog
		svc.Watcher = watcher
		svc.Close = cache.Close
	})
	if err != nil {
		return nil, dig.RootCause(err)
	}
	return svc, nil
}

// registerProviders registers every provider with the container, bottom-up:
// driven adapters, connectors, then services.
func registerProviders(container *dig.Container, cfg *file.Config) error {
	providers := []struct {
		constructor any
		opts        []dig.ProvideOption
	}{
		{constructor: func() *file.Config { return cfg }},

		// Driven adapters
		{constructor: provideCache},
		{constructor: provideFetcher},
		{constructor: provideDataSource},
		{constructor: func(cfg *file.Config) *output.Layout { return output.NewLayout(cfg.Build.OutputDir) }},
		{constructor: output.NewLogoStore, opts: []dig.ProvideOption{dig.As(new(driven.LogoStore))}},
		{constructor: output.NewImageStore, opts: []dig.ProvideOption{dig.As(new(driven.ImageStore))}},
		{constructor: func() driven.AssetBundle { return output.NewBundle(web.Dist()) }},
		{constructor: output.NewPublisher, opts: []dig.ProvideOption{dig.As(new(driven.Publisher))}},
		{constructor: svg.New, opts: []dig.ProvideOption{dig.As(new(driven.LogoNormaliser))}},
		{constructor: provideDatasetReader},
		{constructor: func(cfg *file.Config) *watch.Watcher {
			return watch.New(cfg.Sources.DataFile, cfg.Sources.SettingsFile, cfg.Sources.GuideFile, cfg.Sources.LogosPath)
		}},

		// Connectors
		{constructor: provideGitHubSource},
		{constructor: provideCrunchbaseSource},

		// Services
		{constructor: provideCacheFetcher},
		{constructor: services.NewImagesPreparer},
		{constructor: provideLogoProcessor},
		{constructor: func(cfg *file.Config, source driven.GitHubSource, cache *services.CacheFetcher) *services.GitHubCollector {
			return services.NewGitHubCollector(source, cache, cfg.Build.Concurrency)
		}},
		{constructor: func(cfg *file.Config, source driven.CrunchbaseSource, cache *services.CacheFetcher) *services.CrunchbaseCollector {
			return services.NewCrunchbaseCollector(source, cache, cfg.Build.Concurrency)
		}},
		{constructor: services.NewBuildService, opts: []dig.ProvideOption{dig.As(new(driving.BuildService))}},
		{constructor: services.NewValidateService, opts: []dig.ProvideOption{dig.As(new(driving.ValidateService))}},
		{constructor: services.NewCacheService, opts: []dig.ProvideOption{dig.As(new(driving.CacheService))}},
		{constructor: services.NewCatalogService, opts: []dig.ProvideOption{dig.As(new(driving.CatalogService))}},
	}

	for _, p := range providers {
		if err := container.Provide(p.constructor, p.opts...); err != nil {
			return err
		}
	}
	return nil
}

func provideCache(cfg *file.Config) (driven.Cache, error) {
	switch cfg.Cache.Backend {
	case file.BackendFile:
		return cachefile.NewStore(cfg.Cache.Dir)
	case file.BackendSQLite:
		return sqlite.NewStore(cfg.Cache.Dir)
	case file.BackendMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", domain.ErrInvalidInput, cfg.Cache.Backend)
	}
}

func provideCacheFetcher(cfg *file.Config, cache driven.Cache) (*services.CacheFetcher, error) {
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}
	return services.NewCacheFetcher(cache, ttl), nil
}

func provideFetcher() driven.Fetcher {
	return httpfetch.New(nil)
}

func provideDataSource(cfg *file.Config, fetcher driven.Fetcher) driven.DataSource {
	return landscape.NewSource(landscape.Locations{
		Data:     landscape.Location{File: cfg.Sources.DataFile, URL: cfg.Sources.DataURL},
		Settings: landscape.Location{File: cfg.Sources.SettingsFile, URL: cfg.Sources.SettingsURL},
		Guide:    landscape.Location{File: cfg.Sources.GuideFile, URL: cfg.Sources.GuideURL},
	}, fetcher)
}

func provideDatasetReader(cfg *file.Config) driven.DatasetReader {
	path := cfg.MCP.Dataset
	if path == "" {
		path = filepath.Join(cfg.Build.OutputDir, output.DataDir, output.FullDatasetFile)
	}
	return output.NewDatasetFile(path)
}

func provideLogoProcessor(
	cfg *file.Config,
	fetcher driven.Fetcher,
	cache *services.CacheFetcher,
	normaliser driven.LogoNormaliser,
	store driven.LogoStore,
) *services.LogoProcessor {
	source := services.LogosSource{URL: cfg.Sources.LogosURL}
	if dir := landscape.NewLogosDir(cfg.Sources.LogosPath); dir != nil {
		source.Dir = dir
	}
	return services.NewLogoProcessor(source, fetcher, cache, normaliser, store, cfg.Build.Concurrency)
}

// provideGitHubSource returns a nil source when no tokens are configured,
// which makes the collector serve cached records only. The collector warns
// about it on every build.
func provideGitHubSource(cfg *file.Config) (driven.GitHubSource, error) {
	client, err := github.NewClient(cfg.GitHubTokens)
	if errors.Is(err, domain.ErrSourceUnavailable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// provideCrunchbaseSource returns a nil source when no API key is
// configured, which makes the collector serve cached records only.
func provideCrunchbaseSource(cfg *file.Config) (driven.CrunchbaseSource, error) {
	client, err := crunchbase.NewClient(cfg.CrunchbaseAPIKey)
	if errors.Is(err, domain.ErrSourceUnavailable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}
