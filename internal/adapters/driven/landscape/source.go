package landscape

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DataSource = (*Source)(nil)

// Location points at a file or a URL. File wins when both are set.
type Location struct {
	File string
	URL  string
}

func (l Location) String() string {
	if l.File != "" {
		return l.File
	}
	return l.URL
}

// IsZero reports whether neither a file nor a URL is set.
func (l Location) IsZero() bool {
	return l.File == "" && l.URL == ""
}

// Locations points at the landscape input files. Guide is optional.
type Locations struct {
	Data     Location
	Settings Location
	Guide    Location
}

// Source loads landscape files from disk or over HTTP.
type Source struct {
	locations Locations
	fetcher   driven.Fetcher
}

// NewSource creates a data source.
func NewSource(locations Locations, fetcher driven.Fetcher) *Source {
	return &Source{locations: locations, fetcher: fetcher}
}

// LandscapeData loads and parses the landscape data file.
func (s *Source) LandscapeData(ctx context.Context) (*domain.LandscapeData, error) {
	raw, err := s.read(ctx, s.locations.Data)
	if err != nil {
		return nil, fmt.Errorf("reading landscape data %s: %w", s.locations.Data, err)
	}
	return ParseLandscape(raw)
}

// Settings loads and parses the landscape settings file.
func (s *Source) Settings(ctx context.Context) (*domain.Settings, error) {
	raw, err := s.read(ctx, s.locations.Settings)
	if err != nil {
		return nil, fmt.Errorf("reading landscape settings %s: %w", s.locations.Settings, err)
	}
	return ParseSettings(raw)
}

// Guide loads and parses the landscape guide. It returns nil when no guide
// is configured.
func (s *Source) Guide(ctx context.Context) (*domain.Guide, error) {
	if s.locations.Guide.IsZero() {
		return nil, nil
	}
	raw, err := s.read(ctx, s.locations.Guide)
	if err != nil {
		return nil, fmt.Errorf("reading landscape guide %s: %w", s.locations.Guide, err)
	}
	return ParseGuide(raw)
}

func (s *Source) read(ctx context.Context, loc Location) ([]byte, error) {
	switch {
	case loc.File != "":
		return os.ReadFile(loc.File)
	case loc.URL != "":
		if s.fetcher == nil {
			return nil, errors.New("no fetcher configured")
		}
		return s.fetcher.Fetch(ctx, loc.URL)
	default:
		return nil, fmt.Errorf("%w: either file or url must be provided", domain.ErrInvalidInput)
	}
}
