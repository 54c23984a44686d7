package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Clear    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Search   key.Binding
	Copy     key.Binding
	Top      key.Binding
	PrevYear key.Binding
	NextYear key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Clear, k.Search, k.Copy, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Clear},
		{k.ZoomIn, k.ZoomOut, k.PrevYear, k.NextYear},
		{k.Search, k.Copy, k.Top, k.Help, k.Quit},
	}
}

var keys = keyMap{ //nolint:gochecknoglobals // immutable keymap
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "next scrobble"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "previous scrobble"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous by artist"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next by artist"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "find artist"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y", "c"),
		key.WithHelp("y", "copy"),
	),
	Top: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "top artists"),
	),
	PrevYear: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous year"),
	),
	NextYear: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next year"),
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
