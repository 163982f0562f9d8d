// Package settings provides the configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
)

// View lists every configuration key with its effective value and edits one
// key at a time. Saved values apply the next time the palette starts.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	statusbar       *status.Bar
	settingsService driving.SettingsService

	path     string
	settings []messages.Setting
	err      error

	selected int
	editing  bool
	editor   textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, km *keymap.KeyMap, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	editor := textinput.New()
	editor.CharLimit = 512
	editor.Prompt = ""

	return &View{
		styles:          s,
		keymap:          km,
		statusbar:       status.NewBar(s, km.SettingsHelp()),
		settingsService: settingsService,
		editor:          editor,
		width:           80,
		height:          24,
	}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		configured := svc.Values()
		keys := svc.Keys()
		out := make([]messages.Setting, 0, len(keys))
		for _, k := range keys {
			value, err := svc.Value(k)
			if err != nil {
				return messages.SettingsLoaded{Err: err}
			}
			_, isSet := configured[k]
			out = append(out, messages.Setting{Key: k, Value: value, Configured: isSet})
		}
		return messages.SettingsLoaded{Path: svc.Path(), Settings: out}
	}
}

func (v *View) save(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingSaved{Key: key, Err: ErrNoSettingsService}
		}
		return messages.SettingSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err != nil {
			v.statusbar.SetError(msg.Err.Error())
			return v, nil
		}
		v.path = msg.Path
		v.settings = msg.Settings
		v.selected = min(v.selected, max(len(v.settings)-1, 0))
		return v, nil

	case messages.SettingSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetError(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.statusbar.SetError("")
		v.statusbar.SetMessage(fmt.Sprintf("Saved %s, applies on restart", msg.Key))
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.editor, cmd = v.editor.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if v.editing {
		switch {
		case keymap.Matches(k, v.keymap.Back):
			v.stopEditing()
			return v, nil
		case keymap.Matches(k, v.keymap.Edit):
			key := v.settings[v.selected].Key
			value := strings.TrimSpace(v.editor.Value())
			v.stopEditing()
			return v, v.save(key, value)
		}
		var cmd tea.Cmd
		v.editor, cmd = v.editor.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSearch} }
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.settings)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Edit):
		if len(v.settings) == 0 {
			return v, nil
		}
		v.editing = true
		v.statusbar.SetMessage("")
		v.editor.SetValue(v.settings[v.selected].Value)
		v.editor.CursorEnd()
		return v, v.editor.Focus()
	}
	return v, nil
}

func (v *View) stopEditing() {
	v.editing = false
	v.editor.Blur()
	v.editor.Reset()
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	if v.path != "" {
		b.WriteString(v.styles.Muted.Render(v.path))
	}
	b.WriteString("\n\n")

	keyWidth := 0
	for _, s := range v.settings {
		keyWidth = max(keyWidth, len(s.Key))
	}

	visible := max(v.height-6, 1)
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := min(start+visible, len(v.settings))

	for i := start; i < end; i++ {
		s := v.settings[i]
		indicator := "  "
		if i == v.selected {
			indicator = "❯ "
		}
		label := fmt.Sprintf("%s%-*s  ", indicator, keyWidth, s.Key)

		var value string
		switch {
		case i == v.selected && v.editing:
			value = v.editor.View()
		case s.Configured:
			value = v.styles.Configured.Render(s.Value + " *")
		default:
			value = v.styles.Muted.Render(s.Value)
		}

		if i == v.selected && !v.editing {
			label = v.styles.Selected.Render(label)
		} else {
			label = v.styles.Normal.Render(label)
		}
		b.WriteString(label + value + "\n")
	}

	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
	v.editor.Width = max(width/2, 20)
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.stopEditing()
	v.err = nil
	v.statusbar.Clear()
}

// Selected returns the selected key, or "" when nothing is loaded.
func (v *View) Selected() string {
	if v.selected < 0 || v.selected >= len(v.settings) {
		return ""
	}
	return v.settings[v.selected].Key
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
