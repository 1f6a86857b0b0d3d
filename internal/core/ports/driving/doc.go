// Package driving defines the interfaces exposed by core to the outside
// world (CLI commands, MCP server). Services in core/services implement them.
package driving
