// Package search provides the palette view: a query field whose every edit
// is fed to a query session, with the session's results listed beneath it.
package search

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
)

// reservedLines are taken by the header, query field and status bar.
const reservedLines = 8

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	sessions driving.SessionFactory
	search   driving.SearchService
	session  driving.QuerySession

	query  string
	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new search view. search is only used for index statistics
// and may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	sessions driving.SessionFactory,
	search driving.SearchService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQueryInput(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km.SearchHelp()),
		sessions:  sessions,
		search:    search,
		width:     80,
		height:    24,
	}
}

// Init opens the query session and starts listening for its results.
func (v *View) Init() tea.Cmd {
	if v.sessions == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoSessionFactory}
		}
	}
	if v.session == nil {
		v.session = v.sessions.NewSession()
	}
	return tea.Batch(v.input.Init(), v.waitForResult(), v.loadStats())
}

// waitForResult blocks on the session for its next delivery.
func (v *View) waitForResult() tea.Cmd {
	if v.session == nil {
		return nil
	}
	ch := v.session.Results()
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return messages.SessionClosed{}
		}
		return messages.ResultsDelivered{Result: res}
	}
}

func (v *View) loadStats() tea.Cmd {
	if v.search == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.StatsLoaded{Stats: v.search.Stats()}
	}
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ResultsDelivered:
		v.query = msg.Result.Query
		v.err = nil
		v.list.SetResults(msg.Result.Results)
		v.statusbar.SetError("")
		v.statusbar.SetState(domain.SessionDelivered)
		v.statusbar.SetResultCount(len(msg.Result.Results))
		return v, tea.Batch(v.waitForResult(), v.loadStats())

	case messages.SessionClosed:
		return v, nil

	case messages.StatsLoaded:
		v.statusbar.SetIndexSize(msg.Stats.IndexSize)
		if msg.Stats.LastError != "" && !msg.Stats.IsInitialised {
			v.statusbar.SetError(msg.Stats.LastError)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetError(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case keymap.Matches(k, v.keymap.Open):
		chosen := v.list.SelectedResult()
		if chosen == nil {
			return v, nil
		}
		result := *chosen
		return v, func() tea.Msg { return messages.ResultChosen{Result: result} }

	case keymap.Matches(k, v.keymap.Cancel):
		if v.input.Value() == "" {
			return v, func() tea.Msg { return messages.Quit{} }
		}
		v.input.Reset()
		v.submit("")
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Changed() {
		v.submit(v.input.Value())
	}
	return v, cmd
}

// submit hands the field's value to the session.
func (v *View) submit(raw string) {
	if v.session == nil {
		return
	}
	v.session.Input(raw)
	v.statusbar.SetState(v.session.State())
	if raw == "" {
		v.list.SetResults(nil)
		v.statusbar.SetResultCount(0)
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Palette"),
		v.input.View(),
		"",
		v.list.View(),
		"",
		v.statusbar.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-reservedLines)
	v.statusbar.SetWidth(width)
}

// Close ends the query session.
func (v *View) Close() {
	if v.session != nil {
		v.session.Close()
	}
}

// Query returns the query of the results currently shown.
func (v *View) Query() string {
	return v.query
}

// Input returns the current value of the query field.
func (v *View) Input() string {
	return v.input.Value()
}

// List exposes the result list.
func (v *View) List() *list.ResultList {
	return v.list
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
