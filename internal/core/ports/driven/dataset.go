package driven

import (
	"context"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// DatasetReader loads a previously built, frozen landscape dataset.
type DatasetReader interface {
	// Read returns the landscape data of the dataset.
	Read(ctx context.Context) (*domain.LandscapeData, error)
}
