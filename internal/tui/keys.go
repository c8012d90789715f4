package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings for list mode and input mode.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Complete   key.Binding
	Delete     key.Binding
	NextFilter key.Binding
	ShowAll    key.Binding
	ShowPend   key.Binding
	ShowDone   key.Binding
	Add        key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Complete:   key.NewBinding(key.WithKeys("c", " "), key.WithHelp("c", "complete")),
		Delete:     key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		NextFilter: key.NewBinding(key.WithKeys("tab", "f"), key.WithHelp("tab", "next filter")),
		ShowAll:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		ShowPend:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "pending")),
		ShowDone:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Add:        key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// listHelp returns the bindings shown in the footer while browsing.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Add, k.Up, k.Down, k.Complete, k.Delete, k.NextFilter, k.Quit}
}

// inputHelp returns the bindings shown in the footer while typing.
func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
