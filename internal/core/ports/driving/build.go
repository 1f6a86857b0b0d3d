package driving

import (
	"context"
	"time"
)

// BuildService builds the landscape website.
type BuildService interface {
	// Build runs every build phase. Only setup-level failures are returned;
	// per-item and per-reference failures are logged and reflected in the
	// report.
	Build(ctx context.Context) (*BuildReport, error)
}

// BuildReport summarises a build.
type BuildReport struct {
	Items             int
	LogosPrepared     int
	LogosFailed       int
	GitHubRecords     int
	GitHubFailed      int
	CrunchbaseRecords int
	CrunchbaseFailed  int
	IncludesGuide     bool
	Duration          time.Duration
}

// ValidateService checks landscape input files.
type ValidateService interface {
	// ValidateData loads the landscape data, returning the parse error if any.
	ValidateData(ctx context.Context) error
}

// CacheService manages the durable cache.
type CacheService interface {
	// Stats returns a summary per kind.
	Stats(ctx context.Context) ([]CacheKindStats, error)

	// Clear removes cached entries of kind, or all entries when kind is empty.
	Clear(ctx context.Context, kind string) (int, error)
}

// CacheKindStats summarises cached entries of one kind.
type CacheKindStats struct {
	Kind    string
	Entries int
	Bytes   int64
	Oldest  time.Time
	Newest  time.Time
}
