// Package mcp provides an MCP (Model Context Protocol) server adapter that
// exposes a built landscape dataset to AI assistants.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")
