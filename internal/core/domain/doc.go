// Package domain defines the core entities of the landscape build.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Item: one catalog entry (organization or project)
//   - LandscapeData: the ordered, categorised collection of items
//   - Settings: landscape-level settings (featured items, members, images)
//   - GitHubData, CrunchbaseData: enrichment records collected externally
//   - LogoAsset: a normalised, content-addressed logo
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/google/uuid
//   - Cannot Import: Any internal/ package
package domain
