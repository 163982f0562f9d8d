package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search over HTTP",
	Long: `Serve the palette over HTTP while keeping the index fresh.

Routes:
  GET /search?q=...&limit=N&no_suggest=1  ranked results as JSON
  GET /stats                              index statistics
  GET /healthz                            "ok" once the first build succeeded
  /mcp                                    MCP streamable HTTP transport
  GET /metrics                            Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:7878", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	mcpServer, err := newMCPServer()
	if err != nil {
		return err
	}
	server, err := httpapi.NewServer(httpapi.Config{
		Search:  searchService,
		MCP:     mcpServer.Handler(),
		Metrics: engineMetrics,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	stop := startFreshness(ctx)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "palette listening on http://%s\n", serveAddr)
	return server.ListenAndServe(ctx, serveAddr)
}
