package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Search   key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Open     key.Binding
	Reload   key.Binding
	Settings key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Save     key.Binding
	Add      key.Binding
	Delete   key.Binding
	Export   key.Binding
	Yes      key.Binding
	No       key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Up:       key.NewBinding(key.WithKeys("up", "k", "ctrl+p")),
	Down:     key.NewBinding(key.WithKeys("down", "j", "ctrl+n")),
	Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add value")),
	Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
	Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export excel")),
	Yes:      key.NewBinding(key.WithKeys("y", "enter")),
	No:       key.NewBinding(key.WithKeys("n", "esc")),
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "   "
		}
		out += b.Help().Key + ": " + b.Help().Desc
	}
	return out
}
