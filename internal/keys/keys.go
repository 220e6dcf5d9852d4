// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the console.
type KeyMap struct {
	// Hardware list
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding

	// Session and control
	Play          key.Binding
	Stop          key.Binding
	ToggleControl key.Binding

	// Panels (window menu)
	NextPanel    key.Binding
	PrevPanel    key.Binding
	ClosePanel   key.Binding
	CloseAll     key.Binding
	ToggleLayout key.Binding

	// Virtual stick, used when the joystick is simulated
	StickUp     key.Binding
	StickDown   key.Binding
	StickLeft   key.Binding
	StickRight  key.Binding
	StickCenter key.Binding

	// General
	Fullscreen   key.Binding
	ToggleStatus key.Binding
	Logs         key.Binding
	Config       key.Binding
	Help         key.Binding
	Escape       key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open unit panel"),
		),

		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "play/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		ToggleControl: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "joystick control"),
		),

		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous panel"),
		),
		ClosePanel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close panel"),
		),
		CloseAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "close all panels"),
		),
		ToggleLayout: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tile/tab panels"),
		),

		StickUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("⇧↑", "stick forward"),
		),
		StickDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("⇧↓", "stick back"),
		),
		StickLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("⇧←", "stick left"),
		),
		StickRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("⇧→", "stick right"),
		),
		StickCenter: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "center stick"),
		),

		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle fullscreen"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle status bar"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "show logs"),
		),
		Config: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "show config"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Play, k.Stop, k.ToggleControl, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Activate},                                           // Hardware
		{k.Play, k.Stop, k.ToggleControl},                                    // Session
		{k.NextPanel, k.PrevPanel, k.ClosePanel, k.CloseAll, k.ToggleLayout}, // Panels
		{k.StickUp, k.StickDown, k.StickLeft, k.StickRight, k.StickCenter},   // Stick
		{k.Fullscreen, k.ToggleStatus, k.Logs, k.Config, k.Help, k.Quit},     // General
	}
}
