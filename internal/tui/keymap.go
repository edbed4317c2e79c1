package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the review screen keybindings.
type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	First          key.Binding
	Last           key.Binding
	Focus          key.Binding
	Toggle         key.Binding
	NextUnreviewed key.Binding
	PrevUnreviewed key.Binding
	Filter         key.Binding
	Reset          key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("j/k", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("", ""),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/G", "first/last"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("", ""),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle reviewed"),
		),
		NextUnreviewed: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n/N", "next/prev unreviewed"),
		),
		PrevUnreviewed: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("", ""),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "unreviewed only"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset session"),
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

// ShortHelp is the condensed footer help line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.NextUnreviewed, k.Filter, k.Help, k.Quit}
}

// FullHelp is the expanded help shown by ?.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.First, k.Focus},
		{k.Toggle, k.NextUnreviewed, k.Filter, k.Reset},
		{k.Help, k.Quit},
	}
}
