package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	forceQuit key.Binding
	newNote   key.Binding
	delete    key.Binding
	filter    key.Binding
	reload    key.Binding
	about     key.Binding
	yes       key.Binding
	no        key.Binding

	// note window
	moveUp     key.Binding
	moveDown   key.Binding
	moveLeft   key.Binding
	moveRight  key.Binding
	growDown   key.Binding
	shrinkUp   key.Binding
	growRight  key.Binding
	shrinkLeft key.Binding
	minimize   key.Binding
	deleteNote key.Binding
	copy       key.Binding
	preview    key.Binding
	spawn      key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q")),
	forceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	newNote:   key.NewBinding(key.WithKeys("n", "ctrl+a")),
	delete:    key.NewBinding(key.WithKeys("d")),
	filter:    key.NewBinding(key.WithKeys("/")),
	reload:    key.NewBinding(key.WithKeys("ctrl+r")),
	about:     key.NewBinding(key.WithKeys("v")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n", "esc")),

	moveUp:     key.NewBinding(key.WithKeys("ctrl+up")),
	moveDown:   key.NewBinding(key.WithKeys("ctrl+down")),
	moveLeft:   key.NewBinding(key.WithKeys("ctrl+left")),
	moveRight:  key.NewBinding(key.WithKeys("ctrl+right")),
	growDown:   key.NewBinding(key.WithKeys("shift+down")),
	shrinkUp:   key.NewBinding(key.WithKeys("shift+up")),
	growRight:  key.NewBinding(key.WithKeys("shift+right")),
	shrinkLeft: key.NewBinding(key.WithKeys("shift+left")),
	minimize:   key.NewBinding(key.WithKeys("esc", "ctrl+n")),
	deleteNote: key.NewBinding(key.WithKeys("ctrl+d")),
	copy:       key.NewBinding(key.WithKeys("ctrl+y")),
	preview:    key.NewBinding(key.WithKeys("ctrl+p")),
	spawn:      key.NewBinding(key.WithKeys("ctrl+a")),
}
