package driven

import (
	"context"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// GitHubSource collects repository metadata.
type GitHubSource interface {
	// Repository returns the metadata of the repository at repoURL.
	Repository(ctx context.Context, repoURL string) (*domain.GitHubData, error)
}

// CrunchbaseSource collects organization metadata.
type CrunchbaseSource interface {
	// Organization returns the metadata of the organization at orgURL.
	Organization(ctx context.Context, orgURL string) (*domain.CrunchbaseData, error)
}

// DataSource loads the landscape definition.
type DataSource interface {
	// LandscapeData loads and parses the landscape data file.
	LandscapeData(ctx context.Context) (*domain.LandscapeData, error)

	// Settings loads and parses the landscape settings file.
	Settings(ctx context.Context) (*domain.Settings, error)

	// Guide loads and parses the guide file. It returns nil, nil when the
	// landscape has no guide.
	Guide(ctx context.Context) (*domain.Guide, error)
}
