// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// badgeWidth fits the longest type label, "[suggestion]".
const badgeWidth = 12

// Theme defines the colour palette of the palette window.
type Theme struct {
	// Accent highlights the prompt and the selected row.
	Accent lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for URLs, scores and hints.
	Muted lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color

	// Tab, Bookmark, History and Suggestion colour the result type badges.
	Tab        lipgloss.Color
	Bookmark   lipgloss.Color
	History    lipgloss.Color
	Suggestion lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#7C3AED"), // Purple
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Bar:        lipgloss.Color("#181825"),
		Tab:        lipgloss.Color("#A6E3A1"), // Green
		Bookmark:   lipgloss.Color("#F9E2AF"), // Yellow
		History:    lipgloss.Color("#89B4FA"), // Blue
		Suggestion: lipgloss.Color("#06B6D4"), // Cyan
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Configured lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style

	badges map[domain.DocumentType]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	badge := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true).Width(badgeWidth)
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Accent),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Configured: lipgloss.NewStyle().
			Foreground(theme.Bookmark),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		badges: map[domain.DocumentType]lipgloss.Style{
			domain.DocumentTypeTab:        badge(theme.Tab),
			domain.DocumentTypeBookmark:   badge(theme.Bookmark),
			domain.DocumentTypeHistory:    badge(theme.History),
			domain.DocumentTypeSuggestion: badge(theme.Suggestion),
		},
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Badge renders the type label of a result, e.g. "[tab]".
func (s *Styles) Badge(t domain.DocumentType) string {
	style, ok := s.badges[t]
	if !ok {
		style = s.Muted.Width(badgeWidth)
	}
	return style.Render("[" + t.String() + "]")
}
