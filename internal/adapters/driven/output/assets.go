package output

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

// IndexFile is the web application entry point, rendered rather than copied.
const IndexFile = "index.html"

// keepFile marks otherwise empty directories in the bundle.
const keepFile = ".keep"

// Ensure Bundle implements the interface.
var _ driven.AssetBundle = (*Bundle)(nil)

// Bundle exposes a file system of static web assets.
type Bundle struct {
	fsys fs.FS
}

// NewBundle creates a bundle over fsys.
func NewBundle(fsys fs.FS) *Bundle {
	return &Bundle{fsys: fsys}
}

// List returns the paths of all files in the bundle, sorted.
func (b *Bundle) List() ([]string, error) {
	var paths []string
	err := fs.WalkDir(b.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Read returns the content of the file at path.
func (b *Bundle) Read(path string) ([]byte, error) {
	return fs.ReadFile(b.fsys, path)
}

// indexData is the data available to the index template.
type indexData struct {
	Foundation string
	URL        string
	Favicon    string
	OpenGraph  string
	Items      int
}

// renderIndex renders the bundle index template.
func renderIndex(bundle driven.AssetBundle, data *domain.LandscapeData, settings *domain.Settings) ([]byte, error) {
	raw, err := bundle.Read(IndexFile)
	if err != nil {
		return nil, fmt.Errorf("reading index template: %w", err)
	}

	tmpl, err := template.New(IndexFile).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}

	view := indexData{Items: len(data.Items)}
	if settings != nil {
		view.Foundation = settings.Foundation
		view.URL = settings.URL
		view.Favicon = settings.Images.Favicon
		view.OpenGraph = settings.Images.OpenGraph
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, view); err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}
	return []byte(out.String()), nil
}

// copyAssets copies every bundle file except the index template and keep
// markers into the output directory.
func copyAssets(bundle driven.AssetBundle, layout *Layout) (int, error) {
	paths, err := bundle.List()
	if err != nil {
		return 0, fmt.Errorf("listing web assets: %w", err)
	}

	copied := 0
	for _, p := range paths {
		if p == IndexFile || filepath.Base(p) == keepFile {
			continue
		}
		if strings.Contains(p, "..") {
			return copied, errors.New("invalid asset path " + p)
		}

		data, err := bundle.Read(p)
		if err != nil {
			return copied, fmt.Errorf("reading asset %s: %w", p, err)
		}
		target := layout.Path(filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return copied, fmt.Errorf("creating asset directory: %w", err)
		}
		if err := writeFileAtomic(target, data); err != nil {
			return copied, fmt.Errorf("writing asset %s: %w", p, err)
		}
		copied++
	}
	return copied, nil
}
