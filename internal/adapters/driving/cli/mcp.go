package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GLADI8R/landscape2/internal/adapters/driving/mcp"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server answering queries over a built
landscape.

By default, the server communicates over stdio using JSON-RPC and can be
used with MCP-compatible AI assistants. Use --port to start an HTTP server
instead.

Examples:
  # Stdio mode, serving build/data/full.json
  landscape2 serve-mcp

  # HTTP mode, serving another build
  landscape2 serve-mcp --dataset site/data/full.json --port 8080`,
	Annotations: map[string]string{needsServices: "true"},
	Args:        cobra.NoArgs,
	RunE:        runServeMCP,
}

func init() {
	flags := serveMCPCmd.Flags()
	flags.String("dataset", "", "full dataset to serve (default <output-dir>/data/full.json)")
	flags.StringP("output-dir", "o", "", "build output directory")
	flags.IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveMCPCmd)
}

func runServeMCP(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{Catalog: catalogService})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
