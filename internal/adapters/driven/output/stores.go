package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

// Ensure the stores implement the interfaces.
var (
	_ driven.LogoStore  = (*LogoStore)(nil)
	_ driven.ImageStore = (*ImageStore)(nil)
)

// LogoStore writes content-addressed logos to <output>/logos.
type LogoStore struct {
	layout *Layout
}

// NewLogoStore creates a logo store.
func NewLogoStore(layout *Layout) *LogoStore {
	return &LogoStore{layout: layout}
}

// Write stores data as logos/<digest>.<ext>. The file is only written when
// it does not exist yet; the same digest always carries the same bytes.
func (s *LogoStore) Write(digest, ext string, data []byte) (string, error) {
	name := digest + "." + ext
	if err := safeName(name); err != nil {
		return "", err
	}
	rel := path.Join(LogosDir, name)
	target := s.layout.Path(LogosDir, name)

	if _, err := os.Stat(target); err == nil {
		return rel, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking logo %s: %w", name, err)
	}

	if err := writeFileAtomic(target, data); err != nil {
		return "", fmt.Errorf("writing logo %s: %w", name, err)
	}
	return rel, nil
}

// ImageStore writes settings images to <output>/images.
type ImageStore struct {
	layout *Layout
}

// NewImageStore creates an image store.
func NewImageStore(layout *Layout) *ImageStore {
	return &ImageStore{layout: layout}
}

// WriteImage stores data as images/<name>.
func (s *ImageStore) WriteImage(name string, data []byte) (string, error) {
	if err := safeName(name); err != nil {
		return "", err
	}
	if err := writeFileAtomic(s.layout.Path(ImagesDir, name), data); err != nil {
		return "", fmt.Errorf("writing image %s: %w", name, err)
	}
	return path.Join(ImagesDir, name), nil
}
