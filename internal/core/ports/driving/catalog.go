package driving

import (
	"context"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// ItemQuery filters catalog items. Empty fields match everything.
type ItemQuery struct {
	Category    string
	Subcategory string
	Maturity    string

	// Name matches items whose name contains it, case-insensitively.
	Name string

	// Limit caps the number of results. Zero or less means no limit.
	Limit int
}

// CatalogService answers queries over a built landscape.
type CatalogService interface {
	// QueryItems returns the items matching query, in catalog order.
	QueryItems(ctx context.Context, query ItemQuery) ([]domain.Item, error)

	// GetItem returns the item whose ID or name (case-insensitive) is
	// nameOrID. Returns domain.ErrNotFound when no item matches.
	GetItem(ctx context.Context, nameOrID string) (*domain.Item, error)

	// Categories returns the categories of the landscape.
	Categories(ctx context.Context) ([]domain.Category, error)
}
