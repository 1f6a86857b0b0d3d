package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/logger"
)

// CollectStats summarises one collection batch.
type CollectStats struct {
	References int
	Collected  int
	Failed     int
}

// collectRecords fetches one record per distinct reference through the
// cache. When fetch is nil the source is unavailable and only records
// already in the cache are returned.
func collectRecords[R any](
	ctx context.Context,
	kind string,
	refs []string,
	limit int,
	cache *CacheFetcher,
	fetch func(ctx context.Context, ref string) (*R, error),
) (map[string]*R, CollectStats) {
	stats := CollectStats{References: len(refs)}
	records := make(map[string]*R, len(refs))

	if fetch == nil {
		for _, ref := range refs {
			data, ok := cache.Cached(ctx, kind, ref)
			if !ok {
				continue
			}
			var record R
			if err := json.Unmarshal(data, &record); err != nil {
				logger.Debug("%s: ignoring unreadable cached record for %s: %v", kind, ref, err)
				continue
			}
			records[ref] = &record
		}
		stats.Collected = len(records)
		return records, stats
	}

	results := RunBounded(ctx, "collect "+kind, refs, limit,
		func(ctx context.Context, ref string) (*R, error) {
			data, err := cache.FetchOrCompute(ctx, kind, ref, func(ctx context.Context) ([]byte, error) {
				record, err := fetch(ctx, ref)
				if err != nil {
					return nil, err
				}
				return json.Marshal(record)
			})
			if err != nil {
				return nil, err
			}

			var record R
			if err := json.Unmarshal(data, &record); err != nil {
				return nil, fmt.Errorf("parse %s record: %w", kind, err)
			}
			return &record, nil
		})

	for ref, res := range results {
		if !res.OK {
			stats.Failed++
			continue
		}
		records[ref] = res.Value
	}
	stats.Collected = len(records)
	return records, stats
}

// GitHubCollector collects repository metadata for every distinct
// repository referenced by the landscape items.
type GitHubCollector struct {
	source      driven.GitHubSource
	cache       *CacheFetcher
	concurrency int
}

// NewGitHubCollector creates a collector. source may be nil when no GitHub
// token is available; cached records are still used.
func NewGitHubCollector(source driven.GitHubSource, cache *CacheFetcher, concurrency int) *GitHubCollector {
	return &GitHubCollector{source: source, cache: cache, concurrency: concurrency}
}

// Collect fetches the records of refs. Failed references are absent from
// the returned map.
func (c *GitHubCollector) Collect(ctx context.Context, refs []string) (map[string]*domain.GitHubData, CollectStats) {
	var fetch func(ctx context.Context, ref string) (*domain.GitHubData, error)
	if c.source != nil {
		fetch = c.source.Repository
	} else {
		logger.Warn("github tokens not provided: using cached github data only")
	}
	return collectRecords(ctx, KindGitHub, refs, c.concurrency, c.cache, fetch)
}

// CrunchbaseCollector collects organization metadata for every distinct
// Crunchbase URL referenced by the landscape items.
type CrunchbaseCollector struct {
	source      driven.CrunchbaseSource
	cache       *CacheFetcher
	concurrency int
}

// NewCrunchbaseCollector creates a collector. source may be nil when no
// Crunchbase API key is available; cached records are still used.
func NewCrunchbaseCollector(source driven.CrunchbaseSource, cache *CacheFetcher, concurrency int) *CrunchbaseCollector {
	return &CrunchbaseCollector{source: source, cache: cache, concurrency: concurrency}
}

// Collect fetches the records of refs. Failed references are absent from
// the returned map.
func (c *CrunchbaseCollector) Collect(
	ctx context.Context,
	refs []string,
) (map[string]*domain.CrunchbaseData, CollectStats) {
	var fetch func(ctx context.Context, ref string) (*domain.CrunchbaseData, error)
	if c.source != nil {
		fetch = c.source.Organization
	} else {
		logger.Warn("crunchbase api key not provided: using cached crunchbase data only")
	}
	return collectRecords(ctx, KindCrunchbase, refs, c.concurrency, c.cache, fetch)
}
