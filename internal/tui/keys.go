package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active.
type GlobalKeys struct {
	Quit   key.Binding
	Help   key.Binding
	Tab    key.Binding
	Submit key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q", "ctrl+c"),
		key.WithHelp("Ctrl+q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("Ctrl+h", "help"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter", "ctrl+r"),
		key.WithHelp("Enter", "query"),
	),
}

// FormKeys are active when the project selector or the table is focused.
type FormKeys struct {
	PrevProject key.Binding
	NextProject key.Binding
	Presets     key.Binding
	Reset       key.Binding
}

var formKeys = FormKeys{
	PrevProject: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/→", "project"),
	),
	NextProject: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("←/→", "project"),
	),
	Presets: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "presets"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset range"),
	),
}

// OverlayKeys are active when an overlay is shown.
type OverlayKeys struct {
	Up     key.Binding
	Down   key.Binding
	Apply  key.Binding
	Cancel key.Binding
}

var overlayKeys = OverlayKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}
