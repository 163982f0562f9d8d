// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// ResultsDelivered carries the latest query's results from the session.
type ResultsDelivered struct {
	Result domain.SessionResult
}

// SessionClosed is sent when the session's result channel closes.
type SessionClosed struct{}

// ResultChosen is sent when the user opens a result.
type ResultChosen struct {
	Result domain.ScoredResult
}

// StatsLoaded carries the current index statistics.
type StatsLoaded struct {
	Stats domain.IndexStats
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the query field and result list.
	ViewSearch ViewType = iota
	// ViewSettings lists and edits configuration keys.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Setting is one configuration key with its effective value.
type Setting struct {
	Key        string
	Value      string
	Configured bool
}

// SettingsLoaded carries the configuration listing.
type SettingsLoaded struct {
	Path     string
	Settings []Setting
	Err      error
}

// SettingSaved signals a configuration value was written.
type SettingSaved struct {
	Key string
	Err error
}
