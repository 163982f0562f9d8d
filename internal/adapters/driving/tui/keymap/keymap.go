// Package keymap defines keybindings for the TUI.
//
// Every printable key goes to the query field, so navigation and commands
// use arrows and control chords only.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits without choosing a result.
	Quit key.Binding

	// Cancel clears the query, or quits when it is already empty.
	Cancel key.Binding

	// Up moves the selection up.
	Up key.Binding

	// Down moves the selection down.
	Down key.Binding

	// Open chooses the selected result.
	Open key.Binding

	// Settings switches to the settings view.
	Settings key.Binding

	// Edit starts editing the selected setting.
	Edit key.Binding

	// Back returns to the search view.
	Back key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p", "ctrl+k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n", "ctrl+j"),
			key.WithHelp("↓", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "settings"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// SearchHelp returns the hints shown while searching.
func (k *KeyMap) SearchHelp() []key.Binding {
	return []key.Binding{k.Open, k.Up, k.Down, k.Settings, k.Quit}
}

// SettingsHelp returns the hints shown in the settings view.
func (k *KeyMap) SettingsHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Up, k.Down, k.Back}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
