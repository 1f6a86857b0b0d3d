package output

import (
	"context"
	"fmt"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/logger"
)

// Ensure Publisher implements the interface.
var _ driven.Publisher = (*Publisher)(nil)

// Publisher writes the website files derived from a frozen landscape.
type Publisher struct {
	layout *Layout
	bundle driven.AssetBundle
}

// NewPublisher creates a publisher writing to layout.
func NewPublisher(layout *Layout, bundle driven.AssetBundle) *Publisher {
	return &Publisher{layout: layout, bundle: bundle}
}

// Prepare creates the output directory layout.
func (p *Publisher) Prepare() error {
	return p.layout.Prepare()
}

// Publish writes the datasets, the guide, the index document, the web
// assets and the docs exports. The data must be frozen. guide may be nil.
func (p *Publisher) Publish(
	ctx context.Context,
	data *domain.LandscapeData,
	settings *domain.Settings,
	guide *domain.Guide,
) error {
	if !data.Frozen() {
		return fmt.Errorf("%w: landscape data must be frozen before publishing", domain.ErrInvalidInput)
	}

	if err := writeDatasets(p.layout, data, settings, guide); err != nil {
		return fmt.Errorf("generating datasets: %w", err)
	}
	logger.Debug("datasets written to %s", p.layout.Path(DataDir))

	if err := ctx.Err(); err != nil {
		return err
	}

	index, err := renderIndex(p.bundle, data, settings)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(p.layout.Path(IndexFile), index); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	copied, err := copyAssets(p.bundle, p.layout)
	if err != nil {
		return err
	}
	logger.Debug("%d web assets copied", copied)

	items, err := itemsCSV(data)
	if err != nil {
		return fmt.Errorf("generating items export: %w", err)
	}
	if err := writeFileAtomic(p.layout.Path(DocsDir, ItemsCSVFile), items); err != nil {
		return fmt.Errorf("writing items export: %w", err)
	}

	if err := writeProjects(p.layout, data); err != nil {
		return fmt.Errorf("generating projects files: %w", err)
	}
	return nil
}
