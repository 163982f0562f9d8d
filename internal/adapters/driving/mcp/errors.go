// Package mcp provides an MCP (Model Context Protocol) server adapter for the palette.
// It lets AI assistants search the user's open tabs, bookmarks and history.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
