// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// Bar shows the session state, the index size and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	hints       []key.Binding
	state       domain.SessionState
	err         string
	message     string
	resultCount int
	indexSize   string
	width       int
}

// NewBar creates a new status bar showing the given hints.
func NewBar(s *styles.Styles, hints []key.Binding) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Bar{
		styles: s,
		hints:  hints,
		state:  domain.SessionIdle,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.err != "" {
		return s.styles.Error.Render("Error: " + s.err)
	}
	if s.message != "" {
		return s.styles.Normal.Render(s.message)
	}

	var text string
	switch s.state {
	case domain.SessionDebouncing, domain.SessionQuerying:
		text = "Searching..."
	case domain.SessionDelivered:
		text = fmt.Sprintf("%d results", s.resultCount)
	case domain.SessionIdle:
		text = "Ready"
	default:
		text = "Ready"
	}
	if s.indexSize != "" {
		text += " · " + s.indexSize
	}
	return s.styles.Muted.Render(text)
}

func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.hints))
	for _, b := range s.hints {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the session state shown on the left.
func (s *Bar) SetState(state domain.SessionState) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() domain.SessionState {
	return s.state
}

// SetError shows an error until cleared with an empty string.
func (s *Bar) SetError(msg string) {
	s.err = msg
}

// SetMessage shows a one-off message in place of the state.
func (s *Bar) SetMessage(msg string) {
	s.message = msg
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetIndexSize sets the index description, e.g. "412 documents".
func (s *Bar) SetIndexSize(size string) {
	s.indexSize = size
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to its idle state. The index size is kept.
func (s *Bar) Clear() {
	s.state = domain.SessionIdle
	s.err = ""
	s.message = ""
	s.resultCount = 0
}
