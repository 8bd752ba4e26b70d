package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search     key.Binding
	NextSheet  key.Binding
	PrevSheet  key.Binding
	ExportJSON key.Binding
	ExportCSV  key.Binding
	Open       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextSheet: key.NewBinding(
			key.WithKeys("]", "tab"),
			key.WithHelp("]", "next sheet"),
		),
		PrevSheet: key.NewBinding(
			key.WithKeys("[", "shift+tab"),
			key.WithHelp("[", "prev sheet"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "export JSON"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "export CSV"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.PrevSheet, k.NextSheet, k.ExportJSON, k.ExportCSV, k.Open, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.PrevSheet, k.NextSheet},
		{k.ExportJSON, k.ExportCSV, k.Open, k.Quit},
	}
}
