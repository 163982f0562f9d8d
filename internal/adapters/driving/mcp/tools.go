package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

const defaultLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query         string `json:"query" jsonschema:"text to look for in open tabs, bookmarks and history"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	NoSuggestions bool   `json:"no_suggestions,omitempty" jsonschema:"skip remote search suggestions"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Score         float64    `json:"score"`
	LastVisitTime *time.Time `json:"last_visit_time,omitempty"`
	VisitCount    int        `json:"visit_count,omitempty"`
}

// StatsInput is the (empty) input schema for the index_stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the index_stats tool.
type StatsOutput struct {
	Initialised       bool           `json:"initialised"`
	Size              string         `json:"size"`
	Documents         int            `json:"documents"`
	Counts            map[string]int `json:"counts"`
	Generation        uint64         `json:"generation"`
	BuiltAt           string         `json:"built_at,omitempty"`
	BuildDurationMS   int64          `json:"build_duration_ms"`
	RebuildsCollapsed uint64         `json:"rebuilds_collapsed"`
	LastError         string         `json:"last_error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the browser's open tabs, bookmarks and recent history",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_stats",
		Description: "Describe the current search index",
	}, s.handleStats)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := domain.SearchOptions{Limit: limit, NoSuggestions: input.NoSuggestions}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = toResultOutput(results[i])
	}

	return nil, output, nil
}

func toResultOutput(r domain.ScoredResult) SearchResultOutput {
	out := SearchResultOutput{
		ID:         r.Document.ID,
		Type:       r.Document.Type.String(),
		Title:      r.Document.Title,
		URL:        r.Document.URL,
		Score:      r.Score,
		VisitCount: r.Document.VisitCount,
	}
	if !r.Document.LastVisitTime.IsZero() {
		t := r.Document.LastVisitTime.UTC()
		out.LastVisitTime = &t
	}
	return out
}

// handleStats handles the index_stats tool invocation.
func (s *Server) handleStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	return nil, toStatsOutput(s.ports.Search.Stats()), nil
}

func toStatsOutput(stats domain.IndexStats) StatsOutput {
	out := StatsOutput{
		Initialised:       stats.IsInitialised,
		Size:              stats.IndexSize,
		Documents:         stats.Documents,
		Counts:            make(map[string]int, len(stats.Counts)),
		Generation:        stats.Generation,
		BuildDurationMS:   stats.BuildDuration.Milliseconds(),
		RebuildsCollapsed: stats.RebuildsCollapsed,
		LastError:         stats.LastError,
	}
	for t, n := range stats.Counts {
		out.Counts[t.String()] = n
	}
	if !stats.BuiltAt.IsZero() {
		out.BuiltAt = stats.BuiltAt.UTC().Format(time.RFC3339)
	}
	return out
}
