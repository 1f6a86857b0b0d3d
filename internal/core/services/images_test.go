package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

func TestImagesPreparer_Prepare(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.bodies["https://img.example/favicon.ico"] = []byte("ico")
	fetcher.bodies["https://img.example/brand/header.svg"] = []byte("<svg/>")
	store := &fakeImageStore{}

	images, err := NewImagesPreparer(fetcher, store).Prepare(context.Background(), domain.Images{
		Favicon:    "https://img.example/favicon.ico",
		HeaderLogo: "https://img.example/brand/header.svg",
		FooterLogo: "images/local-footer.svg",
		OpenGraph:  "https://img.example/og.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "images/favicon.ico", images.Favicon)
	assert.Equal(t, "images/header.svg", images.HeaderLogo)
	assert.Equal(t, "images/local-footer.svg", images.FooterLogo)
	assert.Equal(t, "https://img.example/og.png", images.OpenGraph)
	assert.Len(t, store.images, 2)
}

func TestImagesPreparer_FetchFailure(t *testing.T) {
	original := domain.Images{Favicon: "https://img.example/missing.ico"}

	images, err := NewImagesPreparer(newFakeFetcher(), &fakeImageStore{}).Prepare(context.Background(), original)

	require.Error(t, err)
	assert.Equal(t, original, images)
}

func TestImagesPreparer_InvalidURL(t *testing.T) {
	_, err := NewImagesPreparer(newFakeFetcher(), &fakeImageStore{}).Prepare(context.Background(),
		domain.Images{HeaderLogo: "https://img.example/"})

	assert.Error(t, err)
}
