package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService answers queries over a built dataset. The dataset is read
// on first use and kept in memory; a failed read is retried on the next call.
type CatalogService struct {
	reader driven.DatasetReader

	mu   sync.Mutex
	data *domain.LandscapeData
}

// NewCatalogService creates a catalog service.
func NewCatalogService(reader driven.DatasetReader) *CatalogService {
	return &CatalogService{reader: reader}
}

// QueryItems returns the items matching query, in catalog order.
func (s *CatalogService) QueryItems(ctx context.Context, query driving.ItemQuery) ([]domain.Item, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(query.Name))
	var items []domain.Item
	for i := range data.Items {
		item := &data.Items[i]
		if !matchFold(query.Category, item.Category) ||
			!matchFold(query.Subcategory, item.Subcategory) ||
			!matchFold(query.Maturity, item.Maturity) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(item.Name), name) {
			continue
		}
		items = append(items, *item)
		if query.Limit > 0 && len(items) == query.Limit {
			break
		}
	}
	return items, nil
}

// GetItem returns the item whose ID or name matches nameOrID.
func (s *CatalogService) GetItem(ctx context.Context, nameOrID string) (*domain.Item, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	key := strings.TrimSpace(nameOrID)
	if key == "" {
		return nil, fmt.Errorf("%w: empty item name", domain.ErrInvalidInput)
	}
	for i := range data.Items {
		if data.Items[i].ID.String() == strings.ToLower(key) {
			item := data.Items[i]
			return &item, nil
		}
	}
	for i := range data.Items {
		if strings.EqualFold(data.Items[i].Name, key) {
			item := data.Items[i]
			return &item, nil
		}
	}
	return nil, fmt.Errorf("%w: item %q", domain.ErrNotFound, nameOrID)
}

// Categories returns the categories of the landscape.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Categories, nil
}

func (s *CatalogService) load(ctx context.Context) (*domain.LandscapeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data != nil {
		return s.data, nil
	}
	data, err := s.reader.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	s.data = data
	return data, nil
}

func matchFold(want, got string) bool {
	return want == "" || strings.EqualFold(want, got)
}
