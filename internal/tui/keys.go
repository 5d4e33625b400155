package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Delete key.Binding
	Budget key.Binding
	Import key.Binding
	Export key.Binding
	Reset  key.Binding
	Help   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "check in/out"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Budget: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "work time"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export"),
	),
	Reset: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reset"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Delete, k.Budget, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Up, k.Down},
		{k.Edit, k.Delete, k.Budget},
		{k.Import, k.Export, k.Reset},
		{k.Back, k.Help, k.Quit},
	}
}
