// Package cli implements the landscape2 command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/GLADI8R/landscape2/internal/adapters/driven/config/file"
	"github.com/GLADI8R/landscape2/internal/adapters/driven/watch"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
	"github.com/GLADI8R/landscape2/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by commands. Populated by the factory passed to SetServices
// once the configuration is resolved, or directly by tests.
var (
	buildService    driving.BuildService
	validateService driving.ValidateService
	cacheService    driving.CacheService
	catalogService  driving.CatalogService
	inputWatcher    InputWatcher
)

// InputWatcher reports changes to the local landscape input files.
type InputWatcher interface {
	Watch(ctx context.Context) (<-chan watch.Change, error)
	Close() error
}

// Services holds the driving ports commands call into.
type Services struct {
	Build    driving.BuildService
	Validate driving.ValidateService
	Cache    driving.CacheService
	Catalog  driving.CatalogService
	Watcher  InputWatcher

	// Close releases resources held by the services. May be nil.
	Close func() error
}

// ServiceFactory builds the services for a resolved configuration.
type ServiceFactory func(cfg *file.Config) (*Services, error)

var (
	factory       ServiceFactory
	closeServices func() error
)

// annotation marking commands that need services.
const needsServices = "landscape2/services"

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "landscape2",
	Short: "Build interactive landscape websites",
	Long: `landscape2 builds a static landscape website from a landscape data file
and a settings file.

Logos are fetched and normalised, repositories are enriched with GitHub
data and organizations with Crunchbase data. Remote results are kept in a
durable cache so later builds only fetch what is missing.

Credentials are read from the environment:
  GITHUB_TOKENS        comma separated GitHub tokens
  CRUNCHBASE_API_KEY   Crunchbase API key`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./"+file.DefaultFileName+")")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&logFormat, "log-format", "text", "log format (text|json)")
}

// SetServices registers the factory used to build services before a
// command runs.
func SetServices(f ServiceFactory) {
	factory = f
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() {
		if closeServices == nil {
			return
		}
		if err := closeServices(); err != nil {
			logger.Warn("closing services: %v", err)
		}
		closeServices = nil
	}()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	switch logFormat {
	case "text":
		logger.SetJSON(false)
	case "json":
		logger.SetJSON(true)
	default:
		return fmt.Errorf("invalid log format %q", logFormat)
	}

	if cmd.Annotations[needsServices] == "" || factory == nil {
		return nil
	}

	cfg, err := file.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd.Flags(), cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	svc, err := factory(cfg)
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	buildService = svc.Build
	validateService = svc.Validate
	cacheService = svc.Cache
	catalogService = svc.Catalog
	inputWatcher = svc.Watcher
	closeServices = svc.Close
	return nil
}

// applyFlags copies flags set on the command line over cfg.
func applyFlags(flags *pflag.FlagSet, cfg *file.Config) error {
	strs := map[string]*string{
		"data-file":     &cfg.Sources.DataFile,
		"data-url":      &cfg.Sources.DataURL,
		"settings-file": &cfg.Sources.SettingsFile,
		"settings-url":  &cfg.Sources.SettingsURL,
		"logos-path":    &cfg.Sources.LogosPath,
		"logos-url":     &cfg.Sources.LogosURL,
		"guide-file":    &cfg.Sources.GuideFile,
		"guide-url":     &cfg.Sources.GuideURL,
		"output-dir":    &cfg.Build.OutputDir,
		"cache-dir":     &cfg.Cache.Dir,
		"cache-backend": &cfg.Cache.Backend,
		"cache-ttl":     &cfg.Cache.TTL,
		"dataset":       &cfg.MCP.Dataset,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return fmt.Errorf("getting %s flag: %w", name, err)
		}
		*dst = v
		clearAlternative(name, cfg)
	}

	if flags.Changed("concurrency") {
		n, err := flags.GetInt("concurrency")
		if err != nil {
			return fmt.Errorf("getting concurrency flag: %w", err)
		}
		cfg.Build.Concurrency = n
	}
	return nil
}

// clearAlternative resets the counterpart of a file/URL pair so a flag can
// override whichever of the two the config file set.
func clearAlternative(name string, cfg *file.Config) {
	switch name {
	case "data-file":
		cfg.Sources.DataURL = ""
	case "data-url":
		cfg.Sources.DataFile = ""
	case "settings-file":
		cfg.Sources.SettingsURL = ""
	case "settings-url":
		cfg.Sources.SettingsFile = ""
	case "logos-path":
		cfg.Sources.LogosURL = ""
	case "logos-url":
		cfg.Sources.LogosPath = ""
	case "guide-file":
		cfg.Sources.GuideURL = ""
	case "guide-url":
		cfg.Sources.GuideFile = ""
	}
}

// addSourceFlags registers the flags locating the landscape input files.
func addSourceFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("data-file", "", "landscape data file")
	flags.String("data-url", "", "landscape data URL")
	flags.String("settings-file", "", "landscape settings file")
	flags.String("settings-url", "", "landscape settings URL")
	cmd.MarkFlagsMutuallyExclusive("data-file", "data-url")
	cmd.MarkFlagsMutuallyExclusive("settings-file", "settings-url")
}

// addCacheFlags registers the flags configuring the cache.
func addCacheFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("cache-dir", "", "cache directory")
	flags.String("cache-backend", "", "cache backend (file|sqlite|memory)")
}

var errServiceNotConfigured = errors.New("service not configured")

func notConfigured(name string) error {
	return fmt.Errorf("%s %w", name, errServiceNotConfigured)
}
