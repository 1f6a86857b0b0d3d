package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
)

// defaultLimit caps query results when the caller does not.
const defaultLimit = 50

// QueryItemsInput is the input schema for the query_items tool.
type QueryItemsInput struct {
	Category    string `json:"category,omitempty" jsonschema:"only return items in this category"`
	Subcategory string `json:"subcategory,omitempty" jsonschema:"only return items in this subcategory"`
	Maturity    string `json:"maturity,omitempty" jsonschema:"only return items with this maturity (sandbox, incubating, graduated)"`
	Name        string `json:"name,omitempty" jsonschema:"only return items whose name contains this text"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 50)"`
}

// QueryItemsOutput is the output schema for the query_items tool.
type QueryItemsOutput struct {
	Items []ItemSummary `json:"items"`
	Count int           `json:"count"`
}

// ItemSummary is the condensed view of an item returned by queries.
type ItemSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Maturity    string `json:"maturity,omitempty"`
	HomepageURL string `json:"homepage_url,omitempty"`
	Stars       int    `json:"stars,omitempty"`
}

// GetItemInput is the input schema for the get_item tool.
type GetItemInput struct {
	Item string `json:"item" jsonschema:"the item name or id"`
}

// GetItemOutput is the output schema for the get_item tool.
type GetItemOutput struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Category      string       `json:"category"`
	Subcategory   string       `json:"subcategory"`
	Description   string       `json:"description,omitempty"`
	HomepageURL   string       `json:"homepage_url,omitempty"`
	Logo          string       `json:"logo,omitempty"`
	Maturity      string       `json:"maturity,omitempty"`
	AcceptedAt    string       `json:"accepted_at,omitempty"`
	IncubatingAt  string       `json:"incubating_at,omitempty"`
	GraduatedAt   string       `json:"graduated_at,omitempty"`
	Repositories  []RepoOutput `json:"repositories,omitempty"`
	CrunchbaseURL string       `json:"crunchbase_url,omitempty"`
	Organization  string       `json:"organization,omitempty"`
	Funding       int64        `json:"funding,omitempty"`
}

// RepoOutput describes a repository of an item.
type RepoOutput struct {
	URL          string `json:"url"`
	Primary      bool   `json:"primary,omitempty"`
	Stars        int    `json:"stars,omitempty"`
	Contributors int    `json:"contributors,omitempty"`
	License      string `json:"license,omitempty"`
	LastCommit   string `json:"last_commit,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_items",
		Description: "Search landscape items by category, subcategory, maturity or name",
	}, s.handleQueryItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item",
		Description: "Get the details of a landscape item by name or id",
	}, s.handleGetItem)
}

// handleQueryItems handles the query_items tool invocation.
func (s *Server) handleQueryItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryItemsInput,
) (*mcp.CallToolResult, QueryItemsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	items, err := s.ports.Catalog.QueryItems(ctx, driving.ItemQuery{
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Maturity:    input.Maturity,
		Name:        input.Name,
		Limit:       limit,
	})
	if err != nil {
		return nil, QueryItemsOutput{}, err
	}

	output := QueryItemsOutput{
		Items: make([]ItemSummary, len(items)),
		Count: len(items),
	}
	for i := range items {
		output.Items[i] = summarise(&items[i])
	}
	return nil, output, nil
}

// handleGetItem handles the get_item tool invocation.
func (s *Server) handleGetItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetItemInput,
) (*mcp.CallToolResult, GetItemOutput, error) {
	item, err := s.ports.Catalog.GetItem(ctx, input.Item)
	if err != nil {
		return nil, GetItemOutput{}, err
	}
	return nil, details(item), nil
}

func summarise(item *domain.Item) ItemSummary {
	summary := ItemSummary{
		ID:          item.ID.String(),
		Name:        item.Name,
		Category:    item.Category,
		Subcategory: item.Subcategory,
		Maturity:    item.Maturity,
		HomepageURL: item.HomepageURL,
	}
	if repo := item.PrimaryRepository(); repo != nil && repo.GitHubData != nil {
		summary.Stars = repo.GitHubData.Stars
	}
	return summary
}

func details(item *domain.Item) GetItemOutput {
	out := GetItemOutput{
		ID:            item.ID.String(),
		Name:          item.Name,
		Category:      item.Category,
		Subcategory:   item.Subcategory,
		Description:   item.Description,
		HomepageURL:   item.HomepageURL,
		Logo:          item.Logo,
		Maturity:      item.Maturity,
		AcceptedAt:    formatDate(item.AcceptedAt),
		IncubatingAt:  formatDate(item.IncubatingAt),
		GraduatedAt:   formatDate(item.GraduatedAt),
		CrunchbaseURL: item.CrunchbaseURL,
	}
	for _, repo := range item.Repositories {
		r := RepoOutput{URL: repo.URL, Primary: repo.Primary}
		if gh := repo.GitHubData; gh != nil {
			r.Stars = gh.Stars
			r.Contributors = gh.ContributorsCount
			r.License = gh.License
			if gh.LatestCommit != nil {
				r.LastCommit = formatDate(&gh.LatestCommit.TS)
			}
		}
		out.Repositories = append(out.Repositories, r)
	}
	if cb := item.CrunchbaseData; cb != nil {
		out.Organization = cb.Name
		out.Funding = cb.Funding
	}
	return out
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
