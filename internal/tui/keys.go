package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevTab   key.Binding
	NextTab   key.Binding
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Search    key.Binding
	Leave     key.Binding
	Threshold key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	Delete    key.Binding
	Rerender  key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevTab:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev tab")),
		NextTab:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next tab")),
		Tab1:      key.NewBinding(key.WithKeys("1")),
		Tab2:      key.NewBinding(key.WithKeys("2")),
		Tab3:      key.NewBinding(key.WithKeys("3")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Leave:     key.NewBinding(key.WithKeys("enter", "esc")),
		Threshold: key.NewBinding(key.WithKeys("e", "E"), key.WithHelp("e", "ECTS")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Rerender:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-render")),
		Confirm:   key.NewBinding(key.WithKeys("y", "Y", "enter")),
		Cancel:    key.NewBinding(key.WithKeys("n", "N", "esc")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.NextTab, k.Search, k.Threshold, k.Toggle, k.SelectAll, k.Delete, k.Rerender, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		k.ShortHelp(),
	}
}
