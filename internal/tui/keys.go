package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Actions
	Select   key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	MarkPaid key.Binding
	Filter   key.Binding
	LoadMore key.Binding
	Settings key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new invoice")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	MarkPaid: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "mark paid")),
	Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	LoadMore: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
	Settings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
