package services

import (
	"context"
	"fmt"
	"net/url"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

// ImagesPreparer copies the remote settings images to the output directory.
type ImagesPreparer struct {
	fetcher driven.Fetcher
	store   driven.ImageStore
}

// NewImagesPreparer creates an images preparer.
func NewImagesPreparer(fetcher driven.Fetcher, store driven.ImageStore) *ImagesPreparer {
	return &ImagesPreparer{fetcher: fetcher, store: store}
}

// Prepare downloads the favicon, header and footer logos concurrently and
// returns images pointing at the local copies. Any failure is returned.
func (p *ImagesPreparer) Prepare(ctx context.Context, images domain.Images) (domain.Images, error) {
	result := images

	g, gCtx := errgroup.WithContext(ctx)
	for _, target := range []*string{&result.Favicon, &result.HeaderLogo, &result.FooterLogo} {
		if *target == "" || !isRemote(*target) {
			continue
		}
		g.Go(func() error {
			local, err := p.copy(gCtx, *target)
			if err != nil {
				return err
			}
			*target = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return images, err
	}
	return result, nil
}

func (p *ImagesPreparer) copy(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid image url %s: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("invalid image url: %s", rawURL)
	}

	data, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("get image %s: %w", rawURL, err)
	}
	return p.store.WriteImage(name, data)
}
