package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the simulator key bindings.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Forward   key.Binding
	Back      key.Binding
	KnobLeft  key.Binding
	KnobRight key.Binding
	Button    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.KnobLeft, k.KnobRight, k.Button, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Forward, k.Back},
		{k.KnobLeft, k.KnobRight, k.Button},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "tilt left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "tilt right"),
		),
		Forward: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "tilt forward"),
		),
		Back: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "tilt back"),
		),
		KnobLeft: key.NewBinding(
			key.WithKeys("z", "["),
			key.WithHelp("z", "knob ccw"),
		),
		KnobRight: key.NewBinding(
			key.WithKeys("x", "]"),
			key.WithHelp("x", "knob cw"),
		),
		Button: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "button"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
