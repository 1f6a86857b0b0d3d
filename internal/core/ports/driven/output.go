package driven

import (
	"context"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// LogoStore persists prepared logos.
type LogoStore interface {
	// Write stores data as <digest>.<ext> and returns the path relative to
	// the output directory. Writing the same digest twice is a no-op and is
	// safe under concurrent calls.
	Write(digest, ext string, data []byte) (string, error)
}

// ImageStore persists settings images (favicon, header and footer logos).
type ImageStore interface {
	// WriteImage stores data under name and returns the path relative to
	// the output directory.
	WriteImage(name string, data []byte) (string, error)
}

// Publisher writes everything derived from a frozen landscape.
type Publisher interface {
	// Prepare creates the output directory layout.
	Prepare() error

	// Publish generates datasets, exports and the index document, and copies
	// the web assets. guide is nil when the landscape has none.
	Publish(ctx context.Context, data *domain.LandscapeData, settings *domain.Settings, guide *domain.Guide) error
}

// AssetBundle is a read-only view of the static web assets.
type AssetBundle interface {
	// List returns the paths of all assets.
	List() ([]string, error)

	// Read returns the content of the asset at path.
	Read(path string) ([]byte, error)
}
