package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
	"github.com/GLADI8R/landscape2/internal/logger"
)

// Ensure BuildService implements the interface.
var _ driving.BuildService = (*BuildService)(nil)

// BuildService coordinates the landscape build phases.
type BuildService struct {
	assets     driven.AssetBundle
	source     driven.DataSource
	publisher  driven.Publisher
	images     *ImagesPreparer
	logos      *LogoProcessor
	github     *GitHubCollector
	crunchbase *CrunchbaseCollector
}

// NewBuildService creates a build service. images may be nil to keep the
// settings images untouched.
func NewBuildService(
	assets driven.AssetBundle,
	source driven.DataSource,
	publisher driven.Publisher,
	images *ImagesPreparer,
	logos *LogoProcessor,
	github *GitHubCollector,
	crunchbase *CrunchbaseCollector,
) *BuildService {
	return &BuildService{
		assets:     assets,
		source:     source,
		publisher:  publisher,
		images:     images,
		logos:      logos,
		github:     github,
		crunchbase: crunchbase,
	}
}

// Build runs the build phases in order:
//
//  1. check web assets, prepare the output directory, load data, settings
//     and the optional guide
//  2. derive featured and member fields
//  3. prepare logos and merge them into the items
//  4. collect GitHub and Crunchbase data concurrently, then merge both
//  5. freeze the data and publish it
//
// Only setup-level failures are returned.
func (s *BuildService) Build(ctx context.Context) (*driving.BuildReport, error) {
	logger.Info("building landscape website..")
	start := time.Now()

	if err := s.checkWebAssets(); err != nil {
		return nil, err
	}
	if err := s.publisher.Prepare(); err != nil {
		return nil, fmt.Errorf("setup output directory: %w", err)
	}

	// Phase 1
	logger.Section("Load")
	data, err := s.source.LandscapeData(ctx)
	if err != nil {
		return nil, fmt.Errorf("load landscape data: %w", err)
	}
	settings, err := s.source.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load landscape settings: %w", err)
	}
	guide, err := s.source.Guide(ctx)
	if err != nil {
		return nil, fmt.Errorf("load landscape guide: %w", err)
	}
	ids := data.IDs()

	// Phase 2
	if err := data.AddFeaturedItemsData(settings); err != nil {
		return nil, fmt.Errorf("add featured items data: %w", err)
	}
	if err := data.AddMemberSubcategory(settings.MembersCategory); err != nil {
		return nil, fmt.Errorf("add member subcategory: %w", err)
	}

	if s.images != nil {
		images, err := s.images.Prepare(ctx, settings.Images)
		if err != nil {
			return nil, fmt.Errorf("prepare settings images: %w", err)
		}
		settings.Images = images
	}

	report := &driving.BuildReport{Items: len(data.Items), IncludesGuide: guide != nil}

	// Phase 3
	logger.Section("Logos")
	logoStats, err := s.logos.Process(ctx, data)
	if err != nil {
		return nil, err
	}
	report.LogosPrepared = logoStats.Prepared
	report.LogosFailed = logoStats.Failed

	// Phase 4: both fan-outs run concurrently, merges run afterwards.
	logger.Section("External data")
	var (
		githubData      map[string]*domain.GitHubData
		githubStats     CollectStats
		crunchbaseData  map[string]*domain.CrunchbaseData
		crunchbaseStats CollectStats
	)
	githubRefs := data.GitHubReferences()
	crunchbaseRefs := data.CrunchbaseReferences()

	var g errgroup.Group
	g.Go(func() error {
		githubData, githubStats = s.github.Collect(ctx, githubRefs)
		return nil
	})
	g.Go(func() error {
		crunchbaseData, crunchbaseStats = s.crunchbase.Collect(ctx, crunchbaseRefs)
		return nil
	})
	_ = g.Wait() // collectors isolate their own failures

	if err := data.AddGitHubData(githubData); err != nil {
		return nil, fmt.Errorf("add github data: %w", err)
	}
	if err := data.AddCrunchbaseData(crunchbaseData); err != nil {
		return nil, fmt.Errorf("add crunchbase data: %w", err)
	}
	report.GitHubRecords = githubStats.Collected
	report.GitHubFailed = githubStats.Failed
	report.CrunchbaseRecords = crunchbaseStats.Collected
	report.CrunchbaseFailed = crunchbaseStats.Failed

	// Phase 5
	if err := checkCompleteness(ids, data); err != nil {
		return nil, err
	}
	data.Freeze()

	logger.Section("Publish")
	if err := s.publisher.Publish(ctx, data, settings, guide); err != nil {
		return nil, fmt.Errorf("publish landscape: %w", err)
	}

	report.Duration = time.Since(start)
	logger.Info("landscape website built! (took: %.3fs)", report.Duration.Seconds())
	return report, nil
}

// checkWebAssets makes sure the web application has been built.
func (s *BuildService) checkWebAssets() error {
	paths, err := s.assets.List()
	if err != nil {
		return fmt.Errorf("list web assets: %w", err)
	}
	for _, p := range paths {
		if strings.HasPrefix(p, "assets/") {
			return nil
		}
	}
	return domain.ErrAssetsMissing
}

// checkCompleteness verifies that enrichment neither dropped, added nor
// duplicated items.
func checkCompleteness(before []uuid.UUID, data *domain.LandscapeData) error {
	after := data.Index()
	if len(after) != len(before) || len(data.Items) != len(before) {
		return fmt.Errorf("item set changed during enrichment: %d items before, %d after", len(before), len(data.Items))
	}
	for _, id := range before {
		if _, ok := after[id]; !ok {
			return fmt.Errorf("item %s lost during enrichment", id)
		}
	}
	return nil
}
