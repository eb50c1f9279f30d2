package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pages  []key.Binding // one per page, in navigation order
	Next   key.Binding
	Prev   key.Binding
	Menu   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Pages: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "about")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "projects")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "resume")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "certificates")),
			key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "contact")),
		},
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next page")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev page")),
		Menu:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view certificate")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Menu, k.Select, k.Close, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Pages,
		{k.Next, k.Prev, k.Menu},
		{k.Up, k.Down, k.Select, k.Close, k.Quit},
	}
}
