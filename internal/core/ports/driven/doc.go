// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Cache: durable key to bytes store shared by all fetch operations
//   - Fetcher: reads logo and image bytes over HTTP
//   - DataSource: loads landscape data and settings
//   - LogoStore: persists content-addressed logos in the output directory
//   - Publisher: writes datasets, exports and web assets for a frozen landscape
//   - AssetBundle: read-only static assets supplied by the packaging step
//   - DatasetReader: loads a built dataset for the MCP server
//
// # Optional Interfaces
//
// These can be nil - the build degrades gracefully and only uses records
// already present in the cache:
//
//   - GitHubSource: repository metadata from the GitHub API
//   - CrunchbaseSource: organization metadata from the Crunchbase API
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
