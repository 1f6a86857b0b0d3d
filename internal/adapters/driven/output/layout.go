package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Output sub-directories.
const (
	DataDir   = "data"
	DocsDir   = "docs"
	ImagesDir = "images"
	LogosDir  = "logos"
)

// Layout is the output directory of a build.
type Layout struct {
	root string
}

// NewLayout creates a layout rooted at dir.
func NewLayout(dir string) *Layout {
	return &Layout{root: dir}
}

// Root returns the output directory.
func (l *Layout) Root() string {
	return l.root
}

// Path joins elems onto the output directory.
func (l *Layout) Path(elems ...string) string {
	return filepath.Join(append([]string{l.root}, elems...)...)
}

// Prepare creates the output directory and its sub-directories.
func (l *Layout) Prepare() error {
	if l.root == "" {
		return errors.New("output directory not provided")
	}
	for _, dir := range []string{DataDir, DocsDir, ImagesDir, LogosDir} {
		if err := os.MkdirAll(l.Path(dir), 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return nil
}

// writeFileAtomic writes data to path through a temporary file renamed into
// place, so concurrent readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// safeName rejects names that would escape their directory.
func safeName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
