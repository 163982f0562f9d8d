package mcp

import (
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search ranks browser documents and reports index stats.
	Search driving.SearchService

	// Settings exposes the effective configuration. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
