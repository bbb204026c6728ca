package teaprogram

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Rebuild key.Binding
	Quit    key.Binding
	Log     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view. It's part
// of the key.Map interface.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rebuild, k.Log, k.Quit}
}

// FullHelp returns keybindings for the expanded help view. It's part of the
// key.Map interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Rebuild: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rebuild"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Log: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "toggle log"),
	),
}
