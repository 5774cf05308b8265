package tui

import "github.com/charmbracelet/bubbles/key"

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Open   key.Binding
	Quit   key.Binding
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.Open, k.Quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var menuKeys = menuKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑↓", "select"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "compare"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "visualize"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type runKeyMap struct {
	Play     key.Binding
	Step     key.Binding
	StepBack key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Reset    key.Binding
	Copy     key.Binding
	Theme    key.Binding
	Info     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k runKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Step, k.StepBack, k.Faster, k.Slower, k.Reset, k.Copy, k.Theme, k.Info, k.Back}
}

func (k runKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Step, k.StepBack, k.Reset},
		{k.Faster, k.Slower},
		{k.Copy, k.Theme, k.Info, k.Back, k.Quit},
	}
}

var runKeys = runKeyMap{
	Play: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "play/pause"),
	),
	Step: key.NewBinding(
		key.WithKeys("n", "right", "l"),
		key.WithHelp("→", "step"),
	),
	StepBack: key.NewBinding(
		key.WithKeys("b", "left", "h"),
		key.WithHelp("←", "back"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy code"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Info: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "info"),
	),
	Back: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
