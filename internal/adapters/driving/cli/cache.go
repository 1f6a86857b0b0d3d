package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the fetch cache",
	Long: `Inspect and clear the durable cache of logos, images, GitHub and
Crunchbase data. Cached entries never expire unless a TTL is configured,
so clearing a kind is how stale data is refetched.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:         "stats",
	Short:       "Show cache statistics",
	Annotations: map[string]string{needsServices: "true"},
	Args:        cobra.NoArgs,
	RunE:        runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [kind]",
	Short: "Clear cached entries",
	Long: `Clear cached entries of the given kind (for example github or
crunchbase), or every entry when no kind is given.`,
	Annotations: map[string]string{needsServices: "true"},
	Args:        cobra.MaximumNArgs(1),
	RunE:        runCacheClear,
}

func init() {
	addCacheFlags(cacheStatsCmd)
	addCacheFlags(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	if cacheService == nil {
		return notConfigured("cache service")
	}

	stats, err := cacheService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading cache stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tENTRIES\tBYTES\tOLDEST\tNEWEST")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", s.Kind, s.Entries, s.Bytes, formatTime(s.Oldest), formatTime(s.Newest))
	}
	return w.Flush()
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if cacheService == nil {
		return notConfigured("cache service")
	}

	kind := ""
	if len(args) > 0 {
		kind = args[0]
	}
	n, err := cacheService.Clear(cmd.Context(), kind)
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	if kind == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached entries\n", n)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached %s entries\n", n, kind)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
