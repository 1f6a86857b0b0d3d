package driven

import "context"

// Fetcher retrieves raw bytes from a remote location.
type Fetcher interface {
	// Fetch returns the body of a successful response. A non-success status
	// or transport failure is returned as an error.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// LogoReader reads logo files from a local logos directory.
type LogoReader interface {
	// ReadLogo returns the content of the logo named name. Names are
	// resolved below the directory and never escape it.
	ReadLogo(ctx context.Context, name string) ([]byte, error)
}
