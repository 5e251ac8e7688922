package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownStyle is the glamour standard style used for note previews.
var markdownStyle = "dark"

// markdownRenderer renders plain note text for a window of width cells.
type markdownRenderer func(text string, width int) (string, error)

func renderMarkdown(text string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle),
		glamour.WithWordWrap(max(10, width)),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
