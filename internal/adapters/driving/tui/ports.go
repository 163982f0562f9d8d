// Package tui provides the interactive command palette for the terminal.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Sessions opens the query session behind the query field.
	Sessions driving.SessionFactory

	// Search reports index statistics. Optional.
	Search driving.SearchService

	// Settings backs the settings view. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Sessions == nil {
		return ErrMissingSessionFactory
	}
	return nil
}
