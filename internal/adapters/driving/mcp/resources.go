package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for palette resources.
	uriScheme = "palette://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Current index generation and document counts",
		MIMEType:    mimeJSON,
	}, s.handleStatsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Explicitly configured settings",
		MIMEType:    mimeJSON,
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{query}",
		Name:        "search-results",
		Description: "Ranked results for a query",
		MIMEType:    mimeJSON,
	}, s.handleSearchResource)
}

func (s *Server) handleStatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, toStatsOutput(s.ports.Search.Stats()))
}

func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	values := map[string]string{}
	if s.ports.Settings != nil {
		values = s.ports.Settings.Values()
	}
	return jsonResource(req.Params.URI, values)
}

func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractQuery(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results, err := s.ports.Search.Search(ctx, query, domain.SearchOptions{Limit: defaultLimit, NoSuggestions: true})
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	out := make([]SearchResultOutput, len(results))
	for i := range results {
		out[i] = toResultOutput(results[i])
	}
	return jsonResource(req.Params.URI, out)
}

// extractQuery returns the unescaped query of a palette://search/{query} URI.
func extractQuery(uri string) string {
	prefix := uriScheme + "search/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	q, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(q)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}
