package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// promptModel asks one yes/no question before the desk starts.
type promptModel struct {
	title    string
	question string

	answered bool
	accepted bool
}

func newPromptModel(title, question string) promptModel {
	return promptModel{title: title, question: question}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.yes), key.Matches(keyMsg, keys.enter):
		m.answered, m.accepted = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.quit), key.Matches(keyMsg, keys.forceQuit):
		m.answered, m.accepted = true, false
		return m, tea.Quit
	}
	return m, nil
}

func (m promptModel) View() string {
	if m.answered {
		return ""
	}
	content := titleStyle.Render(m.title) + "\n\n" + m.question + "\n\n"
	content += helpStyle.Render("y / enter yes    n / esc no")
	return overlayBoxStyle.Render(content) + "\n"
}
