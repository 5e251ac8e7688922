package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-sticky-notes/internal/app"
	"github.com/MKhiriev/go-sticky-notes/internal/preview"
	"github.com/MKhiriev/go-sticky-notes/models"
)

// writeClipboard is replaced in tests; CI machines have no clipboard.
var writeClipboard = clipboard.WriteAll

// windowModel edits one note. Content is edited as plain text; markup
// written by other clients is flattened on the first edit.
type windowModel struct {
	note   models.Note
	editor textarea.Model

	focused    bool
	previewing bool
	rendered   string
	render     markdownRenderer

	rect  cellRect
	deskW int
	deskH int
}

func newWindowModel(note models.Note, render markdownRenderer) *windowModel {
	editor := textarea.New()
	editor.Prompt = ""
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Placeholder = "Type your note…"
	editor.SetValue(editorText(note.Content))

	if render == nil {
		render = renderMarkdown
	}

	return &windowModel{
		note:   note,
		editor: editor,
		render: render,
	}
}

func (w *windowModel) ID() string {
	return w.note.ID
}

func (w *windowModel) Note() models.Note {
	return w.note
}

// SetNote replaces the window's copy of the note. The editor is reset only
// when the text differs, so the cursor survives the desk's own updates.
func (w *windowModel) SetNote(note models.Note) {
	w.note = note
	if text := editorText(note.Content); text != w.editor.Value() {
		w.editor.SetValue(text)
	}
	if w.previewing {
		w.rendered = w.renderPreview()
	}
}

// Layout recomputes the window's cells for a desk of deskW x deskH.
func (w *windowModel) Layout(deskW, deskH int) {
	w.deskW, w.deskH = deskW, deskH
	w.rect = cellsFor(w.note.Position, w.note.Size, deskW, deskH)

	w.editor.SetWidth(max(1, w.rect.width-2))
	w.editor.SetHeight(max(1, w.rect.height-3))
	if w.previewing {
		w.rendered = w.renderPreview()
	}
}

func (w *windowModel) Focus() tea.Cmd {
	w.focused = true
	return w.editor.Focus()
}

func (w *windowModel) Blur() {
	w.focused = false
	w.editor.Blur()
}

func (w *windowModel) Update(msg tea.Msg) (tea.Cmd, []tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		w.editor, cmd = w.editor.Update(msg)
		return cmd, nil
	}

	switch {
	case key.Matches(keyMsg, keys.moveUp):
		return nil, w.move(0, -moveStepPx)
	case key.Matches(keyMsg, keys.moveDown):
		return nil, w.move(0, moveStepPx)
	case key.Matches(keyMsg, keys.moveLeft):
		return nil, w.move(-moveStepPx, 0)
	case key.Matches(keyMsg, keys.moveRight):
		return nil, w.move(moveStepPx, 0)
	case key.Matches(keyMsg, keys.shrinkUp):
		return nil, w.resize(0, -resizeStepPx)
	case key.Matches(keyMsg, keys.growDown):
		return nil, w.resize(0, resizeStepPx)
	case key.Matches(keyMsg, keys.shrinkLeft):
		return nil, w.resize(-resizeStepPx, 0)
	case key.Matches(keyMsg, keys.growRight):
		return nil, w.resize(resizeStepPx, 0)
	case key.Matches(keyMsg, keys.minimize):
		return nil, []tea.Msg{closeWindowMsg{id: w.note.ID}}
	case key.Matches(keyMsg, keys.deleteNote):
		return nil, []tea.Msg{requestDeleteMsg{id: w.note.ID, title: w.note.Title}}
	case key.Matches(keyMsg, keys.copy):
		return w.copyCmd(), nil
	case key.Matches(keyMsg, keys.preview):
		return nil, w.togglePreview()
	case key.Matches(keyMsg, keys.spawn):
		return nil, []tea.Msg{createNoteMsg{}}
	}

	if w.previewing {
		return nil, nil
	}

	before := w.editor.Value()
	var cmd tea.Cmd
	w.editor, cmd = w.editor.Update(keyMsg)
	if after := w.editor.Value(); after != before {
		w.note.Content = after
		return cmd, []tea.Msg{updateNoteMsg{id: w.note.ID, patch: models.ContentPatch(after)}}
	}
	return cmd, nil
}

func (w *windowModel) move(dx, dy int) []tea.Msg {
	pos := moved(w.note.Position, w.note.Size, dx, dy, w.deskW, w.deskH)
	if pos == w.note.Position {
		return nil
	}
	w.note.Position = pos
	return []tea.Msg{updateNoteMsg{id: w.note.ID, patch: models.GeometryPatch(pos, w.note.Size)}}
}

func (w *windowModel) resize(dw, dh int) []tea.Msg {
	size := resized(w.note.Size, dw, dh)
	if size == w.note.Size {
		return nil
	}
	w.note.Size = size
	return []tea.Msg{updateNoteMsg{id: w.note.ID, patch: models.GeometryPatch(w.note.Position, size)}}
}

func (w *windowModel) togglePreview() []tea.Msg {
	if w.previewing {
		w.previewing = false
		w.rendered = ""
		return nil
	}

	w.previewing = true
	text := w.editor.Value()
	out, err := w.render(text, max(1, w.rect.width-2))
	if err != nil {
		w.rendered = text
		return []tea.Msg{statusMsg{text: app.PrefixPreviewUnavailable + err.Error(), warn: true}}
	}
	w.rendered = out
	return nil
}

func (w *windowModel) renderPreview() string {
	text := w.editor.Value()
	out, err := w.render(text, max(1, w.rect.width-2))
	if err != nil {
		return text
	}
	return out
}

func (w *windowModel) copyCmd() tea.Cmd {
	text := w.editor.Value()
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(text)}
	}
}

func (w *windowModel) View() string {
	if w.rect.width < 4 || w.rect.height < 3 {
		return ""
	}
	innerW := w.rect.width - 2
	innerH := w.rect.height - 2

	title := preview.Snippet(firstLine(w.note.Title), innerW)
	if w.previewing {
		title = preview.Snippet(firstLine(w.note.Title), max(0, innerW-10)) + helpStyle.Render(" [preview]")
	}

	body := w.editor.View()
	if w.previewing {
		body = w.rendered
	}
	content := clipLines(windowTitleStyle.Render(title)+"\n"+body, innerW, innerH)

	style := windowStyle
	if w.focused {
		style = focusedWindowStyle
	}
	return style.Width(innerW).Height(innerH).Render(content)
}

// editorText is what the editor shows for content: markup is flattened,
// plain text is kept as is.
func editorText(content string) string {
	if preview.IsMarkup(content) {
		return preview.PlainText(content)
	}
	return content
}
