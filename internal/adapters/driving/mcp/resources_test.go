package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

func TestExtractItemKey(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "item name",
			uri:      "landscape://items/Kubernetes",
			expected: "Kubernetes",
		},
		{
			name:     "escaped item name",
			uri:      "landscape://items/Envoy%20Proxy",
			expected: "Envoy Proxy",
		},
		{
			name:     "invalid prefix",
			uri:      "file://items/Kubernetes",
			expected: "",
		},
		{
			name:     "invalid escape",
			uri:      "landscape://items/%zz",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractItemKey(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCategoriesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns categories", func(t *testing.T) {
		catalog := &mockCatalogService{categories: []domain.Category{
			{Name: "Orchestration", Subcategories: []string{"Scheduling"}},
		}}
		server, err := NewServer(&Ports{Catalog: catalog})
		require.NoError(t, err)

		req := makeReadResourceRequest("landscape://categories")
		result, err := server.handleCategoriesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"name": "Orchestration"`)
		assert.Contains(t, result.Contents[0].Text, "Scheduling")
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{err: errors.New("dataset unreadable")}})
		require.NoError(t, err)

		_, err = server.handleCategoriesResource(ctx, makeReadResourceRequest("landscape://categories"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing categories")
	})
}

func TestServer_handleItemResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns item details", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{items: sampleItems()}})
		require.NoError(t, err)

		req := makeReadResourceRequest("landscape://items/Envoy%20Proxy")
		result, err := server.handleItemResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"name": "Envoy Proxy"`)
		assert.Equal(t, req.Params.URI, result.Contents[0].URI)
	})

	t.Run("unknown item returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{items: sampleItems()}})
		require.NoError(t, err)

		_, err = server.handleItemResource(ctx, makeReadResourceRequest("landscape://items/Linkerd"))

		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{}})
		require.NoError(t, err)

		_, err = server.handleItemResource(ctx, makeReadResourceRequest("landscape://other"))

		require.Error(t, err)
	})

	t.Run("catalog failure is wrapped", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{err: errors.New("boom")}})
		require.NoError(t, err)

		_, err = server.handleItemResource(ctx, makeReadResourceRequest("landscape://items/Kubernetes"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting item")
	})
}
