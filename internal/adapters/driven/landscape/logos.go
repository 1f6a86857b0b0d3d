package landscape

import (
	"context"
	"os"
	"path/filepath"

	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

var _ driven.LogoReader = (*LogosDir)(nil)

// LogosDir reads logos from a local directory.
type LogosDir struct {
	root string
}

// NewLogosDir returns a reader rooted at root, or nil when root is empty.
func NewLogosDir(root string) *LogosDir {
	if root == "" {
		return nil
	}
	return &LogosDir{root: root}
}

// ReadLogo reads name below the logos directory.
func (d *LogosDir) ReadLogo(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(d.root, filepath.Clean("/"+name)))
}
