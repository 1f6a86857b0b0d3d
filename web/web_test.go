package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDist(t *testing.T) {
	fsys := Dist()

	index, err := fs.ReadFile(fsys, "index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), "{{ .Foundation }}")

	_, err = fs.Stat(fsys, "assets/app.js")
	assert.NoError(t, err)
}
