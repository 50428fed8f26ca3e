package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the browser.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Cursor
	Up         key.Binding
	Down       key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding

	// Navigation
	Open    key.Binding // Enter the directory under the cursor
	Parent  key.Binding
	Back    key.Binding
	Forward key.Binding
	Refresh key.Binding
	Home    key.Binding

	// Filter mode
	Filter      key.Binding
	ClearFilter key.Binding
	ApplyFilter key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		GotoTop:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		GotoBottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

		Open:    key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter/l", "open")),
		Parent:  key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "parent")),
		Back:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Forward: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forward")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Home:    key.NewBinding(key.WithKeys("~"), key.WithHelp("~", "home")),

		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		ClearFilter: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		ApplyFilter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply filter")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Parent, k.Back, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.GotoTop, k.GotoBottom},
		{k.Open, k.Parent, k.Back, k.Forward},
		{k.Refresh, k.Home, k.Filter, k.ClearFilter},
		{k.Help, k.Quit},
	}
}
