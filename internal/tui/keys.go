package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	enter   key.Binding
	esc     key.Binding
	refresh key.Binding
	delete  key.Binding
	add     key.Binding
	copy    key.Binding
	info    key.Binding
	quit    key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show")),
	esc:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add cin")),
	copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy path")),
	info:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "version")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n", "esc")),
}

// treeHelp is shown below the resource list.
func (k keyMap) treeHelp() []key.Binding {
	return []key.Binding{k.enter, k.refresh, k.delete, k.add, k.copy, k.info, k.quit}
}
