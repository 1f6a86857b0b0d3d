package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/GLADI8R/landscape2/internal/adapters/driven/watch"
	"github.com/GLADI8R/landscape2/internal/logger"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the landscape website",
	Long: `Build the landscape website into the output directory.

The data and settings files are loaded, logos are prepared and GitHub and
Crunchbase data is collected for every item. Failures fetching a single
logo or record are logged and do not stop the build. An optional guide file
is published as data/guide.json.

With --watch the build is repeated whenever a local input file or the logos
directory changes, until interrupted.

Examples:
  landscape2 build --data-file landscape.yml --settings-file settings.yml \
    --logos-path hosted_logos --output-dir build

  # Rebuild on every change
  landscape2 build --data-file landscape.yml --settings-file settings.yml \
    --logos-path hosted_logos --watch`,
	Annotations: map[string]string{needsServices: "true"},
	Args:        cobra.NoArgs,
	RunE:        runBuild,
}

func init() {
	addSourceFlags(buildCmd)
	addCacheFlags(buildCmd)
	flags := buildCmd.Flags()
	flags.String("logos-path", "", "local directory containing the logos")
	flags.String("logos-url", "", "base URL the logos are fetched from")
	flags.String("guide-file", "", "landscape guide file")
	flags.String("guide-url", "", "landscape guide URL")
	flags.StringP("output-dir", "o", "", "output directory")
	flags.String("cache-ttl", "", "refetch cached entries older than this duration")
	flags.IntP("concurrency", "c", 0, "maximum tasks in flight per stage (0 = auto)")
	flags.BoolP("watch", "w", false, "rebuild when local input files change")
	buildCmd.MarkFlagsMutuallyExclusive("logos-path", "logos-url")
	buildCmd.MarkFlagsMutuallyExclusive("guide-file", "guide-url")
	rootCmd.AddCommand(buildCmd)
}

// watchDebounce is how long the watch loop waits for further changes
// before rebuilding.
var watchDebounce = 300 * time.Millisecond

func runBuild(cmd *cobra.Command, _ []string) error {
	if buildService == nil {
		return notConfigured("build service")
	}

	watching, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}
	if !watching {
		return buildOnce(cmd)
	}
	return buildAndWatch(cmd)
}

func buildOnce(cmd *cobra.Command) error {
	report, err := buildService.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Built %d items in %s\n", report.Items, report.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "  logos:      %d prepared, %d failed\n", report.LogosPrepared, report.LogosFailed)
	fmt.Fprintf(out, "  github:     %d collected, %d failed\n", report.GitHubRecords, report.GitHubFailed)
	fmt.Fprintf(out, "  crunchbase: %d collected, %d failed\n", report.CrunchbaseRecords, report.CrunchbaseFailed)
	if report.IncludesGuide {
		fmt.Fprintln(out, "  guide:      included")
	}
	return nil
}

// buildAndWatch builds, then rebuilds on every burst of input changes.
// Build failures are reported and the loop keeps watching.
func buildAndWatch(cmd *cobra.Command) error {
	if inputWatcher == nil {
		return notConfigured("input watcher")
	}
	ctx := cmd.Context()

	changes, err := inputWatcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching inputs: %w", err)
	}
	defer inputWatcher.Close()

	if err := buildOnce(cmd); err != nil {
		logger.Error(err, "build")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("%s %s", change.Path, change.Type)
			if !drain(ctx, changes) {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Change detected in %s, rebuilding\n", change.Path)
			if err := buildOnce(cmd); err != nil {
				logger.Error(err, "build")
			}
		}
	}
}

// drain discards changes until none arrive for watchDebounce. It returns
// false when the watch is over.
func drain(ctx context.Context, changes <-chan watch.Change) bool {
	timer := time.NewTimer(watchDebounce)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-changes:
			if !ok {
				return false
			}
			timer.Reset(watchDebounce)
		case <-timer.C:
			return true
		}
	}
}
