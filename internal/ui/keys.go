package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the host key bindings
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Submit     key.Binding
	Clear      key.Binding
	NextWidget key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous result"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next result"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search / open"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		NextWidget: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch box"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "?"),
			key.WithHelp("?/f1", "key reference (? outside a box)"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit (outside a box)"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Submit, k.Clear, k.NextWidget, k.Help, k.ForceQuit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Submit},
		{k.Clear, k.NextWidget, k.Help, k.Quit, k.ForceQuit},
	}
}
