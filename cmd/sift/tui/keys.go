package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up			key.Binding
	Down		key.Binding
	PageUp		key.Binding
	PageDown	key.Binding
	Home		key.Binding
	End			key.Binding

	Toggle		key.Binding
	Collapse	key.Binding

	Sort		key.Binding
	Order		key.Binding
	Hosts		key.Binding
	DupesOnly	key.Binding
	Category	key.Binding
	SizeUp		key.Binding
	SizeDown	key.Binding

	SearchName	key.Binding
	SearchHash	key.Binding
	Pin			key.Binding
	Subtree		key.Binding
	Back		key.Binding

	Help		key.Binding
	Quit		key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:			key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:		key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:		key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:	key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
		Home:		key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "top")),
		End:		key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "bottom")),

		Toggle:		key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
		Collapse:	key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),

		Sort:		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Order:		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort order")),
		Hosts:		key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "cycle hosts")),
		DupesOnly:	key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duplicates only")),
		Category:	key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category filter")),
		SizeUp:		key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise size floor")),
		SizeDown:	key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "lower size floor")),

		SearchName:	key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search names")),
		SearchHash:	key.NewBinding(key.WithKeys("#"), key.WithHelp("#", "search hashes")),
		Pin:		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin copies")),
		Subtree:	key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "subtree duplicates")),
		Back:		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		Help:		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:		key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.DupesOnly, k.SearchName, k.Pin, k.Subtree, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Toggle, k.Collapse, k.Sort, k.Order},
		{k.Hosts, k.DupesOnly, k.Category, k.SizeUp, k.SizeDown},
		{k.SearchName, k.SearchHash, k.Pin, k.Subtree, k.Back},
		{k.Help, k.Quit},
	}
}
