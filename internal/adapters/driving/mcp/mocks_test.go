package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	items      []domain.Item
	categories []domain.Category
	err        error
	lastQuery  driving.ItemQuery
}

func (m *mockCatalogService) QueryItems(_ context.Context, query driving.ItemQuery) ([]domain.Item, error) {
	m.lastQuery = query
	return m.items, m.err
}

func (m *mockCatalogService) GetItem(_ context.Context, nameOrID string) (*domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.items {
		if strings.EqualFold(m.items[i].Name, nameOrID) || m.items[i].ID.String() == nameOrID {
			return &m.items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogService) Categories(_ context.Context) ([]domain.Category, error) {
	return m.categories, m.err
}

func sampleItems() []domain.Item {
	accepted := time.Date(2016, 3, 10, 0, 0, 0, 0, time.UTC)
	commit := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Item{
		{
			ID:          domain.ItemID("Orchestration", "Scheduling", "Kubernetes"),
			Name:        "Kubernetes",
			Category:    "Orchestration",
			Subcategory: "Scheduling",
			Description: "Production-grade container orchestration",
			HomepageURL: "https://kubernetes.io",
			Maturity:    "graduated",
			AcceptedAt:  &accepted,
			Repositories: []domain.Repository{{
				URL:     "https://github.com/kubernetes/kubernetes",
				Primary: true,
				GitHubData: &domain.GitHubData{
					Stars:             100000,
					ContributorsCount: 3000,
					License:           "Apache-2.0",
					LatestCommit:      &domain.Commit{TS: commit},
				},
			}},
			CrunchbaseURL:  "https://www.crunchbase.com/organization/cncf",
			CrunchbaseData: &domain.CrunchbaseData{Name: "CNCF", Funding: 1000},
		},
		{
			ID:          domain.ItemID("Networking", "Service Proxy", "Envoy Proxy"),
			Name:        "Envoy Proxy",
			Category:    "Networking",
			Subcategory: "Service Proxy",
		},
	}
}
