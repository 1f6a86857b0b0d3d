package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no path is given.
const DefaultFileName = "landscape2.toml"

// Environment variables holding credentials.
const (
	EnvGitHubTokens     = "GITHUB_TOKENS"
	EnvCrunchbaseAPIKey = "CRUNCHBASE_API_KEY"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the build configuration.
type Config struct {
	Cache   CacheConfig   `toml:"cache"`
	Build   BuildConfig   `toml:"build"`
	Sources SourcesConfig `toml:"sources"`
	MCP     MCPConfig     `toml:"mcp"`

	// Credentials, populated from the environment only.
	GitHubTokens     []string `toml:"-"`
	CrunchbaseAPIKey string   `toml:"-"`
}

// CacheConfig configures the durable cache.
type CacheConfig struct {
	Dir     string `toml:"dir"`
	Backend string `toml:"backend"`

	// TTL is a Go duration. Empty or zero keeps entries until cleared.
	TTL string `toml:"ttl"`
}

// BuildConfig configures the build.
type BuildConfig struct {
	// Concurrency caps in-flight tasks per fan-out stage. Zero selects
	// min(logical CPUs, 20).
	Concurrency int    `toml:"concurrency"`
	OutputDir   string `toml:"output_dir"`
}

// SourcesConfig locates the landscape input files.
type SourcesConfig struct {
	DataFile     string `toml:"data_file"`
	DataURL      string `toml:"data_url"`
	SettingsFile string `toml:"settings_file"`
	SettingsURL  string `toml:"settings_url"`
	LogosPath    string `toml:"logos_path"`
	LogosURL     string `toml:"logos_url"`

	// The guide is optional.
	GuideFile string `toml:"guide_file"`
	GuideURL  string `toml:"guide_url"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	// Dataset is the full dataset served. Empty selects the one in the
	// build output directory.
	Dataset string `toml:"dataset"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	cacheDir := ".landscape2-cache"
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "landscape2")
	}
	return &Config{
		Cache: CacheConfig{
			Dir:     cacheDir,
			Backend: BackendFile,
		},
		Build: BuildConfig{
			OutputDir: "build",
		},
	}
}

// Load reads the configuration at path over the defaults, then applies the
// environment. When path is empty DefaultFileName is tried and may be
// absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing config %s: %v", domain.ErrInvalidInput, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv reads credentials using getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.GitHubTokens = nil
	for _, token := range strings.Split(getenv(EnvGitHubTokens), ",") {
		if token = strings.TrimSpace(token); token != "" {
			c.GitHubTokens = append(c.GitHubTokens, token)
		}
	}
	c.CrunchbaseAPIKey = strings.TrimSpace(getenv(EnvCrunchbaseAPIKey))
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown cache backend %q", domain.ErrInvalidInput, c.Cache.Backend)
	}
	if c.Cache.Dir == "" {
		return fmt.Errorf("%w: cache dir not set", domain.ErrInvalidInput)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if c.Build.Concurrency < 0 {
		return fmt.Errorf("%w: negative build concurrency", domain.ErrInvalidInput)
	}
	if c.Sources.DataFile != "" && c.Sources.DataURL != "" {
		return fmt.Errorf("%w: data_file and data_url are mutually exclusive", domain.ErrInvalidInput)
	}
	if c.Sources.SettingsFile != "" && c.Sources.SettingsURL != "" {
		return fmt.Errorf("%w: settings_file and settings_url are mutually exclusive", domain.ErrInvalidInput)
	}
	if c.Sources.LogosPath != "" && c.Sources.LogosURL != "" {
		return fmt.Errorf("%w: logos_path and logos_url are mutually exclusive", domain.ErrInvalidInput)
	}
	if c.Sources.GuideFile != "" && c.Sources.GuideURL != "" {
		return fmt.Errorf("%w: guide_file and guide_url are mutually exclusive", domain.ErrInvalidInput)
	}
	return nil
}

// CacheTTL parses the cache TTL. Zero means entries never expire.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || ttl < 0 {
		return 0, fmt.Errorf("%w: invalid cache ttl %q", domain.ErrInvalidInput, c.Cache.TTL)
	}
	return ttl, nil
}
