// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/styles"
)

const minInputWidth = 20

// QueryInput is the palette's query field. Changed reports whether the last
// Update altered the value, so callers forward only real edits.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
	changed   bool
}

// NewQueryInput creates a focused query field.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search open tabs, bookmarks and history"
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &QueryInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	before := q.textinput.Value()
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	q.changed = q.textinput.Value() != before
	return q, cmd
}

// Changed reports whether the last Update changed the value.
func (q *QueryInput) Changed() bool {
	return q.changed
}

// View renders the query field.
func (q *QueryInput) View() string {
	prompt := q.styles.Title.Render("❯ ")
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, prompt, field)
}

// Value returns the current input value.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
}

// SetWidth sets the width of the field, leaving room for the prompt and border.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	q.textinput.Width = max(width-8, minInputWidth)
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the input.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
	q.changed = false
}
