package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the browser's key bindings.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	NextCategory  key.Binding
	PrevCategory  key.Binding
	RatingUp      key.Binding
	RatingDown    key.Binding
	ToggleSort    key.Binding
	FavoritesOnly key.Binding
	Favorite      key.Binding
	LoadMore      key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("c", "tab"),
			key.WithHelp("c", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("C", "shift+tab"),
			key.WithHelp("C", "prev category"),
		),
		RatingUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "raise min rating"),
		),
		RatingDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "lower min rating"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		FavoritesOnly: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorites only"),
		),
		Favorite: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "favorite"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
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

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextCategory, k.RatingUp, k.ToggleSort, k.Favorite, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.LoadMore},
		{k.NextCategory, k.PrevCategory, k.RatingUp, k.RatingDown},
		{k.ToggleSort, k.FavoritesOnly, k.Favorite},
		{k.Help, k.Quit},
	}
}
