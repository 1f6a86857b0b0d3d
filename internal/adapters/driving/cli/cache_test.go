package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
)

func TestCacheCmd_Use(t *testing.T) {
	assert.Equal(t, "cache", cacheCmd.Use)
	assert.Equal(t, "stats", cacheStatsCmd.Use)
	assert.Equal(t, "clear [kind]", cacheClearCmd.Use)
}

func TestCacheStatsCmd_Table(t *testing.T) {
	mock := &mockCacheService{stats: []driving.CacheKindStats{
		{Kind: "github", Entries: 3, Bytes: 2048, Oldest: time.Now(), Newest: time.Now()},
		{Kind: "logo", Entries: 7, Bytes: 9000},
	}}
	cleanup := setupServices(nil, nil, mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "github")
	assert.Contains(t, out, "2048")
	assert.Contains(t, out, "logo")
	assert.Contains(t, out, "-")
}

func TestCacheStatsCmd_Empty(t *testing.T) {
	cleanup := setupServices(nil, nil, &mockCacheService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Cache is empty")
}

func TestCacheClearCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantKind string
		wantOut  string
	}{
		{name: "all", args: []string{"cache", "clear"}, wantKind: "", wantOut: "Removed 4 cached entries"},
		{name: "kind", args: []string{"cache", "clear", "github"}, wantKind: "github", wantOut: "Removed 4 cached github entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCacheService{cleared: 4, clearedKind: "unset"}
			cleanup := setupServices(nil, nil, mock)
			defer cleanup()

			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetArgs(tt.args)
			defer func() {
				rootCmd.SetArgs(nil)
			}()

			require.NoError(t, rootCmd.Execute())
			assert.Equal(t, tt.wantKind, mock.clearedKind)
			assert.Contains(t, buf.String(), tt.wantOut)
		})
	}
}

func TestCacheClearCmd_TooManyArgs(t *testing.T) {
	cleanup := setupServices(nil, nil, &mockCacheService{})
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"cache", "clear", "github", "logo"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	assert.Error(t, rootCmd.Execute())
}

func TestFormatTime_Zero(t *testing.T) {
	assert.Equal(t, "-", formatTime(time.Time{}))
}
