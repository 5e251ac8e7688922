package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#F4D35E"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#93A1A1", Dark: "#586E75"}

	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	toolbarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(mutedColor).
			PaddingLeft(1)
	selectedItemStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	previewStyle      = lipgloss.NewStyle().Faint(true)

	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor)
	focusedWindowStyle = windowStyle.BorderForeground(accentColor)
	windowTitleStyle   = lipgloss.NewStyle().Bold(true)

	statusStyle = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)
