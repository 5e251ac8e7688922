package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-sticky-notes/internal/preview"
	"github.com/MKhiriev/go-sticky-notes/models"
)

// toolbarModel lists every note with a short preview and a filter box.
type toolbarModel struct {
	filter    textinput.Model
	filtering bool
	focused   bool

	items  []models.Note
	cursor int

	width  int
	height int

	previewLines int
	previewWidth int
}

func newToolbar(previewLines, previewWidth int) *toolbarModel {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter"

	return &toolbarModel{
		filter:       filter,
		previewLines: previewLines,
		previewWidth: previewWidth,
	}
}

func (t *toolbarModel) SetItems(notes []models.Note) {
	t.items = notes
	if t.cursor >= len(t.items) {
		t.cursor = len(t.items) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *toolbarModel) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.filter.Width = max(1, width-4)
}

func (t *toolbarModel) Filter() string {
	return t.filter.Value()
}

func (t *toolbarModel) Selected() (models.Note, bool) {
	if len(t.items) == 0 || t.cursor < 0 || t.cursor >= len(t.items) {
		return models.Note{}, false
	}
	return t.items[t.cursor], true
}

func (t *toolbarModel) Focus() tea.Cmd {
	t.focused = true
	if t.filtering {
		return t.filter.Focus()
	}
	return nil
}

func (t *toolbarModel) Blur() {
	t.focused = false
	t.filter.Blur()
}

func (t *toolbarModel) Update(msg tea.Msg) (tea.Cmd, []tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if !t.filtering {
			return nil, nil
		}
		var cmd tea.Cmd
		t.filter, cmd = t.filter.Update(msg)
		return cmd, nil
	}

	if t.filtering {
		return t.updateFilter(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(keyMsg, keys.down):
		if t.cursor < len(t.items)-1 {
			t.cursor++
		}
	case key.Matches(keyMsg, keys.enter):
		if note, ok := t.Selected(); ok {
			return nil, []tea.Msg{openNoteMsg{id: note.ID}}
		}
	case key.Matches(keyMsg, keys.newNote):
		return nil, []tea.Msg{createNoteMsg{}}
	case key.Matches(keyMsg, keys.delete), key.Matches(keyMsg, keys.deleteNote):
		if note, ok := t.Selected(); ok {
			return nil, []tea.Msg{requestDeleteMsg{id: note.ID, title: note.Title}}
		}
	case key.Matches(keyMsg, keys.filter):
		t.filtering = true
		return t.filter.Focus(), nil
	case key.Matches(keyMsg, keys.esc):
		if t.filter.Value() != "" {
			t.filter.SetValue("")
			return nil, []tea.Msg{filterChangedMsg{}}
		}
	case key.Matches(keyMsg, keys.about):
		return nil, []tea.Msg{aboutMsg{}}
	case key.Matches(keyMsg, keys.quit):
		return nil, []tea.Msg{quitMsg{}}
	}

	return nil, nil
}

func (t *toolbarModel) updateFilter(msg tea.KeyMsg) (tea.Cmd, []tea.Msg) {
	switch {
	case key.Matches(msg, keys.enter):
		t.filtering = false
		t.filter.Blur()
		return nil, nil
	case key.Matches(msg, keys.esc):
		t.filtering = false
		t.filter.Blur()
		t.filter.SetValue("")
		return nil, []tea.Msg{filterChangedMsg{}}
	case msg.String() == "ctrl+a":
		return nil, []tea.Msg{createNoteMsg{}}
	}

	before := t.filter.Value()
	var cmd tea.Cmd
	t.filter, cmd = t.filter.Update(msg)
	if value := t.filter.Value(); value != before {
		t.cursor = 0
		return cmd, []tea.Msg{filterChangedMsg{filter: value}}
	}
	return cmd, nil
}

func (t *toolbarModel) View() string {
	width := max(1, t.width)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Sticky Notes (%d)", len(t.items))))
	b.WriteString("\n")
	if t.filtering || t.filter.Value() != "" {
		b.WriteString(t.filter.View())
	} else {
		b.WriteString(helpStyle.Render("/ filter"))
	}
	b.WriteString("\n\n")

	header := strings.Count(b.String(), "\n")
	footer := helpStyle.Render("n new · d del · q quit")
	available := t.height - header - 2

	lines, selStart, selEnd := t.renderItems(width)
	start := 0
	if available > 0 && selEnd > available {
		start = min(selStart, selEnd-available)
	}
	if start < len(lines) {
		lines = lines[start:]
	}
	if available >= 0 && len(lines) > available {
		lines = lines[:available]
	}
	if len(t.items) == 0 {
		if t.filter.Value() != "" {
			lines = []string{helpStyle.Render("no matches")}
		} else {
			lines = []string{helpStyle.Render("no notes yet")}
		}
	}

	b.WriteString(strings.Join(lines, "\n"))
	for pad := available - len(lines); pad > 0; pad-- {
		b.WriteString("\n")
	}
	b.WriteString("\n\n")
	b.WriteString(footer)

	return clipLines(b.String(), width, max(0, t.height))
}

// renderItems returns the list lines and the line span of the selected item.
func (t *toolbarModel) renderItems(width int) (lines []string, selStart, selEnd int) {
	for i, note := range t.items {
		title := preview.Snippet(firstLine(note.Title), width-2)
		snippet := preview.Snippet(t.previewText(note), min(t.previewWidth, 2*(width-2)))

		if i == t.cursor {
			selStart = len(lines)
			marker := "  "
			if t.focused {
				marker = "> "
			}
			lines = append(lines, selectedItemStyle.Render(marker+title))
		} else {
			lines = append(lines, "  "+title)
		}
		if snippet != "" {
			for _, l := range wrapCells(snippet, width-2) {
				lines = append(lines, "  "+previewStyle.Render(l))
			}
		}
		if i == t.cursor {
			selEnd = len(lines)
		}
	}
	return lines, selStart, selEnd
}

// previewText is the plain text shown under a title: the lines that follow
// the first one, up to previewLines.
func (t *toolbarModel) previewText(note models.Note) string {
	lines := strings.Split(strings.TrimLeft(preview.PlainText(note.Content), "\n"), "\n")
	if len(lines) <= 1 {
		return ""
	}
	lines = lines[1:]
	if t.previewLines > 0 && len(lines) > t.previewLines {
		lines = lines[:t.previewLines]
	}
	return strings.Join(lines, " ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
