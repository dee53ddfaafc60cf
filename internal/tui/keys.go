package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Scan   key.Binding
	Filter key.Binding
	Export key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Scan: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "scan/stop"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter connectable"),
		),
		Export: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "export list"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scan, k.Filter, k.Export, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
