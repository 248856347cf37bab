// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the diff viewer.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	HalfDown key.Binding
	HalfUp   key.Binding

	// Files
	NextFile key.Binding
	PrevFile key.Binding

	// Panes
	FocusLeft  key.Binding
	FocusRight key.Binding
	CyclePane  key.Binding

	// View
	ToggleMode     key.Binding
	ToggleWordDiff key.Binding
	ToggleStatus   key.Binding

	// General
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),

		// Files
		NextFile: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "next file"),
		),
		PrevFile: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "previous file"),
		),

		// Panes
		FocusLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "focus file list"),
		),
		FocusRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "focus diff"),
		),
		CyclePane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),

		// View
		ToggleMode: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle side-by-side"),
		),
		ToggleWordDiff: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle word diff"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle status bar"),
		),

		// General
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
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfDown, k.HalfUp},
		{k.NextFile, k.PrevFile, k.FocusLeft, k.FocusRight, k.CyclePane},
		{k.ToggleMode, k.ToggleWordDiff, k.ToggleStatus},
		{k.Help, k.Escape, k.Quit},
	}
}
