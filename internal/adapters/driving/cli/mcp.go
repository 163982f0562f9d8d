package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
your tabs, bookmarks and history.

By default the server speaks JSON-RPC over stdio. Use --http to serve the
streamable HTTP transport at /mcp instead.

Examples:
  # Stdio mode (for desktop assistants)
  palette mcp

  # HTTP mode (for MCP Inspector, remote access)
  palette mcp --http 127.0.0.1:7879

Assistant configuration:
  {
    "mcpServers": {
      "palette": {
        "command": "/path/to/palette",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func newMCPServer() (*mcp.Server, error) {
	return mcp.NewServer(&mcp.Ports{
		Search:   searchService,
		Settings: settingsService,
	})
}

func runMCP(cmd *cobra.Command, _ []string) error {
	server, err := newMCPServer()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	stop := startFreshness(ctx)
	defer stop()

	if mcpHTTPAddr == "" {
		return server.Run(ctx)
	}

	httpServer, err := httpapi.NewServer(httpapi.Config{
		Search:  searchService,
		MCP:     server.Handler(),
		Metrics: engineMetrics,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s/mcp\n", mcpHTTPAddr)
	return httpServer.ListenAndServe(ctx, mcpHTTPAddr)
}
