package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Refresh    key.Binding
	RefreshAll key.Binding
	Menu       key.Binding
	NextWidget key.Binding
	PrevWidget key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding // menu: previous tab
	Right      key.Binding // menu: next tab
	Select     key.Binding
	OpenLink   key.Binding
	Expand     key.Binding
	Back       key.Binding
	PageUp     key.Binding // reader
	PageDown   key.Binding // reader
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k, h/l) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	RefreshAll: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "refresh all"),
	),
	Menu: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "companion"),
	),
	NextWidget: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next widget"),
	),
	PrevWidget: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev widget"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev tab"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next tab"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "read"),
	),
	OpenLink: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "show link"),
	),
	Expand: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fullscreen"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d", " "),
		key.WithHelp("pgdn", "page down"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextWidget, k.Refresh, k.RefreshAll, k.Menu, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextWidget, k.PrevWidget, k.Up, k.Down},
		{k.Select, k.OpenLink, k.Expand, k.Back},
		{k.Refresh, k.RefreshAll, k.Menu},
		{k.Help, k.Quit},
	}
}

// menuKeys is the help view while the companion menu is open.
type menuKeys struct{ KeyMap }

func (k menuKeys) ShortHelp() []key.Binding {
	sel := k.Select
	sel.SetHelp("enter", "buy/equip")
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, sel, k.Menu, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// readerKeys is the help view while the reader is open.
type readerKeys struct{ KeyMap }

func (k readerKeys) ShortHelp() []key.Binding {
	up, down := k.Up, k.Down
	up.SetHelp("k/↑", "scroll up")
	down.SetHelp("j/↓", "scroll down")
	back := k.Back
	back.SetHelp("esc", "close")
	return []key.Binding{up, down, k.PageUp, k.PageDown, k.OpenLink, back, k.Quit}
}

func (k readerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
