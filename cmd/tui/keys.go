package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the key bindings shared by every prompt
type keyMap struct {
	Submit key.Binding
	Abort  key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Abort: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}
