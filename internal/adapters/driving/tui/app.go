package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// App is the palette application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	keymap *keymap.KeyMap

	searchView   *search.View
	settingsView *settings.View
	currentView  messages.ViewType

	// chosen is the result the user opened, if any.
	chosen *domain.ScoredResult

	err   error
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		keymap:       km,
		searchView:   search.NewView(s, km, ports.Sessions, ports.Search),
		settingsView: settings.NewView(s, km, ports.Settings),
		currentView:  messages.ViewSearch,
	}, nil
}

// WithContext sets the context the program runs under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("palette"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.ready = true
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		k := msg.String()
		if keymap.Matches(k, a.keymap.Quit) {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewSearch && keymap.Matches(k, a.keymap.Settings) && a.ports.Settings != nil {
			return a.switchTo(messages.ViewSettings)
		}
		return a.forward(msg)

	case messages.ViewChanged:
		return a.switchTo(msg.View)

	case messages.ResultChosen:
		chosen := msg.Result
		a.chosen = &chosen
		return a, tea.Quit

	case messages.Quit:
		return a, tea.Quit

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a.forward(msg)

	case messages.ResultsDelivered, messages.SessionClosed, messages.StatsLoaded:
		// Session traffic always belongs to the search view, even while
		// settings are shown, so its listener keeps running.
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	return a.forward(msg)
}

// forward hands a message to the active view.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	}
	return a, cmd
}

func (a *App) switchTo(view messages.ViewType) (tea.Model, tea.Cmd) {
	a.currentView = view
	if view == messages.ViewSettings {
		a.settingsView.Reset()
		return a, a.settingsView.Init()
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.currentView == messages.ViewSettings {
		return a.settingsView.View()
	}
	return a.searchView.View()
}

// Run starts the palette and blocks until the user quits. It returns the
// result the user opened, or nil when they quit without choosing.
func (a *App) Run() (*domain.ScoredResult, error) {
	defer a.searchView.Close()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return a.chosen, nil
}

// Chosen returns the result the user opened, if any.
func (a *App) Chosen() *domain.ScoredResult {
	return a.chosen
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its first window size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
