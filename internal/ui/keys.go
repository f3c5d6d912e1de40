package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for the cosmos view.
type KeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Home       key.Binding
	Jump       key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	Journal    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", " ", "right"),
			key.WithHelp("n/space", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "back"),
		),
		Home: key.NewBinding(
			key.WithKeys("h", "esc", "home"),
			key.WithHelp("h/esc", "overview"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to body"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("↓/j", "scroll"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Journal: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "journal"),
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
	return []key.Binding{k.Next, k.Prev, k.Home, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Home, k.Jump},
		{k.ScrollDown, k.ScrollUp},
		{k.Journal, k.Help, k.Quit},
	}
}

// jumpIndex returns the body index for a digit key, or -1.
func jumpIndex(s string) int {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return -1
	}
	return int(s[0] - '1')
}
