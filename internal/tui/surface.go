package tui

import tea "github.com/charmbracelet/bubbletea"

// surface is a focusable part of the desk: the toolbar or a note window.
//
// Update returns a command for bubbletea and the command messages the desk
// must execute before handling the next event.
type surface interface {
	Update(msg tea.Msg) (tea.Cmd, []tea.Msg)
	View() string
	Focus() tea.Cmd
	Blur()
}
