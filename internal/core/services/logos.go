package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/logger"
)

// ErrNoLogosSource indicates a logo reference cannot be resolved because
// neither a logos path nor a logos URL is configured.
var ErrNoLogosSource = errors.New("no logos source configured")

// LogosSource tells where item logo file names are resolved from.
// Exactly one of Dir and URL is expected to be set. Logo references that
// are absolute http(s) URLs are always fetched remotely.
type LogosSource struct {
	// Dir reads logos from a local directory.
	Dir driven.LogoReader

	// URL is a base URL the logo file names are appended to.
	URL string
}

// LogoStats summarises the logo phase.
type LogoStats struct {
	Prepared int
	Failed   int
	Skipped  int
}

// LogoProcessor fetches, normalises, content-addresses and stores the
// logos of all items.
type LogoProcessor struct {
	source      LogosSource
	fetcher     driven.Fetcher
	cache       *CacheFetcher
	normaliser  driven.LogoNormaliser
	store       driven.LogoStore
	concurrency int
}

// NewLogoProcessor creates a logo processor.
func NewLogoProcessor(
	source LogosSource,
	fetcher driven.Fetcher,
	cache *CacheFetcher,
	normaliser driven.LogoNormaliser,
	store driven.LogoStore,
	concurrency int,
) *LogoProcessor {
	return &LogoProcessor{
		source:      source,
		fetcher:     fetcher,
		cache:       cache,
		normaliser:  normaliser,
		store:       store,
		concurrency: concurrency,
	}
}

// Process prepares every item logo and rewrites the items' logo field to
// the stored asset path, or to the empty marker when preparation failed.
func (p *LogoProcessor) Process(ctx context.Context, data *domain.LandscapeData) (LogoStats, error) {
	var stats LogoStats

	// Snapshot the inputs so tasks never read items while they run.
	refs := make(map[uuid.UUID]string, len(data.Items))
	ids := make([]uuid.UUID, 0, len(data.Items))
	for i := range data.Items {
		item := &data.Items[i]
		if strings.TrimSpace(item.Logo) == "" {
			stats.Skipped++
			continue
		}
		refs[item.ID] = strings.TrimSpace(item.Logo)
		ids = append(ids, item.ID)
	}

	results := RunBounded(ctx, "prepare logo", ids, p.concurrency,
		func(ctx context.Context, id uuid.UUID) (string, error) {
			return p.prepare(ctx, refs[id])
		})

	logos := make(map[uuid.UUID]string, len(results))
	for id, res := range results {
		if !res.OK {
			stats.Failed++
			continue
		}
		logos[id] = res.Value
		stats.Prepared++
	}

	// Single-threaded merge after the fan-out has drained.
	if err := data.SetLogos(logos); err != nil {
		return stats, fmt.Errorf("merge logos: %w", err)
	}

	logger.Info("logos: %d prepared, %d failed, %d without logo", stats.Prepared, stats.Failed, stats.Skipped)
	return stats, nil
}

// prepare resolves, fetches, normalises and stores a single logo,
// returning its path relative to the output directory.
func (p *LogoProcessor) prepare(ctx context.Context, ref string) (string, error) {
	raw, err := p.read(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("get logo %s: %w", ref, err)
	}

	normalised, err := p.normaliser.Normalise(raw)
	if err != nil {
		return "", fmt.Errorf("normalise logo %s: %w", ref, err)
	}

	asset := domain.NewLogoAsset(normalised)
	logoPath, err := p.store.Write(asset.Digest, p.normaliser.Extension(), asset.Data)
	if err != nil {
		return "", fmt.Errorf("write logo %s: %w", ref, err)
	}
	return logoPath, nil
}

// read returns the raw bytes of the logo referenced by ref.
func (p *LogoProcessor) read(ctx context.Context, ref string) ([]byte, error) {
	remote, err := p.resolve(ref)
	if err != nil {
		return nil, err
	}
	if remote == "" {
		return p.source.Dir.ReadLogo(ctx, ref)
	}

	return p.cache.FetchOrCompute(ctx, KindLogo, remote, func(ctx context.Context) ([]byte, error) {
		return p.fetcher.Fetch(ctx, remote)
	})
}

// resolve returns the remote URL of ref, or an empty string when the logo
// must be read from the local logos path.
func (p *LogoProcessor) resolve(ref string) (string, error) {
	if isRemote(ref) {
		return ref, nil
	}
	switch {
	case p.source.Dir != nil:
		return "", nil
	case p.source.URL != "":
		base, err := url.Parse(p.source.URL)
		if err != nil {
			return "", fmt.Errorf("invalid logos url: %w", err)
		}
		base.Path = path.Join(base.Path, ref)
		return base.String(), nil
	default:
		return "", ErrNoLogosSource
	}
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
