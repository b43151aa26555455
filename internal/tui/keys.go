package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the global bindings. Component shortcuts are checked first,
// so a component may shadow any of these while it is active.
type keyMap struct {
	NextPanel key.Binding
	PrevPanel key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Open      key.Binding
	Close     key.Binding
	Command   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextPanel: key.NewBinding(key.WithKeys("tab", "j", "down"), key.WithHelp("tab", "next panel")),
		PrevPanel: key.NewBinding(key.WithKeys("shift+tab", "k", "up"), key.WithHelp("S-tab", "prev panel")),
		NextTab:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev tab")),
		Open:      key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open")),
		Close:     key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "close")),
		Command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpKeys merges the global bindings with the shortcuts of active
// components for the help view.
type helpKeys struct {
	global    keyMap
	shortcuts help.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	out := []key.Binding{h.global.NextPanel, h.global.Open, h.global.Close, h.global.Command, h.global.Help, h.global.Quit}
	if h.shortcuts != nil {
		out = append(out, h.shortcuts.ShortHelp()...)
	}
	return out
}

func (h helpKeys) FullHelp() [][]key.Binding {
	g := h.global
	columns := [][]key.Binding{
		{g.NextPanel, g.PrevPanel, g.NextTab, g.PrevTab},
		{g.Open, g.Close, g.Command, g.Help, g.Quit},
	}
	if h.shortcuts != nil {
		columns = append(columns, h.shortcuts.FullHelp()...)
	}
	return columns
}
