package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLADI8R/landscape2/internal/adapters/driven/config/file"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "landscape2", rootCmd.Use)
}

func TestRootCmd_Commands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"build", "validate", "cache", "serve-mcp", "version"})
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-format"))
}

func TestApplyFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-url", "", "")
	flags.String("settings-file", "", "")
	flags.String("cache-backend", "", "")
	flags.String("output-dir", "", "")
	flags.String("guide-file", "", "")
	flags.Int("concurrency", 0, "")
	require.NoError(t, flags.Parse([]string{
		"--data-url", "https://example.com/landscape.yml",
		"--cache-backend", "sqlite",
		"--guide-file", "guide.yml",
		"--concurrency", "3",
	}))

	cfg := file.Defaults()
	cfg.Sources.DataFile = "landscape.yml"
	cfg.Sources.SettingsFile = "settings.yml"
	cfg.Sources.GuideURL = "https://example.com/guide.yml"

	require.NoError(t, applyFlags(flags, cfg))

	assert.Equal(t, "https://example.com/landscape.yml", cfg.Sources.DataURL)
	assert.Empty(t, cfg.Sources.DataFile, "flag replaces the file set in config")
	assert.Equal(t, "settings.yml", cfg.Sources.SettingsFile, "unset flags keep config values")
	assert.Equal(t, file.BackendSQLite, cfg.Cache.Backend)
	assert.Equal(t, "build", cfg.Build.OutputDir)
	assert.Equal(t, 3, cfg.Build.Concurrency)
	assert.Equal(t, "guide.yml", cfg.Sources.GuideFile)
	assert.Empty(t, cfg.Sources.GuideURL)
	assert.NoError(t, cfg.Validate())
}

func TestExecute_UsesFactory(t *testing.T) {
	cleanup := setupServices(nil, nil, nil)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "landscape2.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache]\nbackend = \"memory\"\n"), 0o644))

	var got *file.Config
	closed := false
	SetServices(func(cfg *file.Config) (*Services, error) {
		got = cfg
		return &Services{
			Cache: &mockCacheService{},
			Close: func() error {
				closed = true
				return nil
			},
		}, nil
	})

	oldCfgFile := cfgFile
	defer func() { cfgFile = oldCfgFile }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--config", path, "cache", "stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := Execute(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, file.BackendMemory, got.Cache.Backend)
	assert.True(t, closed)
	assert.Contains(t, buf.String(), "Cache is empty")
}

func TestExecute_InvalidLogFormat(t *testing.T) {
	cleanup := setupServices(nil, nil, nil)
	defer cleanup()

	oldFormat := logFormat
	defer func() { logFormat = oldFormat }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--log-format", "xml", "version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}
