package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-palette/internal/logger"
)

// Version is reported to MCP clients during initialisation.
const Version = "0.1.0"

const instructions = `Searches the user's open browser tabs, bookmarks and recent history.
Use the search tool with a few words from a page title or domain.
Results list open tabs first, then bookmarks, then history.`

// Server exposes palette search over MCP.
type Server struct {
	ports  *Ports
	server *mcp.Server
	log    *logger.Logger
}

// NewServer creates a server and registers its tools and resources.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "palette", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		log: logger.Named("mcp"),
	}

	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves over stdio until ctx ends or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Debug("serving on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves the streamable HTTP transport. Every request shares one
// server, so tools see the same index.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}
