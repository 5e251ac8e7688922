package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/MKhiriev/go-sticky-notes/internal/app"
	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/internal/preview"
	"github.com/MKhiriev/go-sticky-notes/internal/service"
	"github.com/MKhiriev/go-sticky-notes/internal/store"
	"github.com/MKhiriev/go-sticky-notes/models"
)

const (
	toolbarWidth    = 36
	statusTTL       = 3 * time.Second
	warningTTL      = 8 * time.Second
	confirmTitleMax = 40
)

// Session describes what the desk is showing.
type Session struct {
	// StorePath is shown in the about window.
	StorePath string

	// Changes delivers external modifications of the notes file. Nil when
	// nothing is watched.
	Changes <-chan store.ExternalChange

	// Notice is shown in the status line on start.
	Notice string
}

// deskModel is the root model. It owns the toolbar and every open note
// window, and is the only place the registry is called from.
//
// Routing:
//  1. ctrl+c quits from anywhere;
//  2. overlays (error, delete confirmation, about) take all keys while shown;
//  3. tab / shift+tab move focus, ctrl+r reloads;
//  4. everything else goes to the focused surface.
type deskModel struct {
	ctx       context.Context
	registry  service.NoteRegistry
	logger    *logger.Logger
	buildInfo models.AppBuildInfo
	session   Session
	render    markdownRenderer

	toolbar *toolbarModel
	windows []*windowModel
	focus   surface

	width  int
	height int

	confirm       *confirmModel
	errorOverlay  *errorOverlayModel
	showBuildInfo bool

	status        string
	statusWarn    bool
	statusSeq     int
	pendingReload bool

	quitByUser bool
	initCmd    tea.Cmd
}

type deskOption func(*deskModel)

func withRenderer(r markdownRenderer) deskOption {
	return func(m *deskModel) { m.render = r }
}

func newDeskModel(ctx context.Context, registry service.NoteRegistry, ui UIOptions, session Session, log *logger.Logger, opts ...deskOption) *deskModel {
	m := &deskModel{
		ctx:       ctx,
		registry:  registry,
		logger:    log,
		buildInfo: ui.BuildInfo,
		session:   session,
		render:    renderMarkdown,
		toolbar:   newToolbar(ui.PreviewLines, ui.PreviewWidth),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.focus = m.toolbar
	m.syncWindows()
	m.refreshToolbar()

	focusCmd := m.focusOn(m.toolbar)
	if n := len(m.windows); n > 0 {
		focusCmd = m.focusOn(m.windows[n-1])
	}

	statusCmd := tea.Cmd(nil)
	if session.Notice != "" {
		statusCmd = m.setStatus(session.Notice, true)
	}
	m.initCmd = tea.Batch(focusCmd, statusCmd)

	return m
}

func (m *deskModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.waitForWarning(), m.waitForChange())
}

func (m *deskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case saveWarningMsg:
		return m, tea.Batch(m.setStatus(humanizeStoreError(msg.err), true), m.waitForWarning())

	case externalChangeMsg:
		m.pendingReload = true
		text := app.MsgExternalChange
		if msg.change.Removed {
			text = app.MsgExternalRemoval
		}
		return m, tea.Batch(m.setStatus(text, true), m.waitForChange())

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("func", "deskModel.Update").Msg("clipboard write failed")
			return m, m.setStatus(app.PrefixClipboardUnavailable+msg.err.Error(), true)
		}
		return m, m.setStatus(app.MsgCopied, false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusWarn = false
		}
		return m, nil
	}

	if m.focus == nil {
		return m, nil
	}
	cmd, actions := m.focus.Update(msg)
	return m, tea.Batch(cmd, m.dispatch(actions))
}

func (m *deskModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.forceQuit) {
		m.quitByUser = true
		return tea.Quit
	}

	if m.errorOverlay != nil {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.errorOverlay = nil
		}
		return nil
	}

	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			id := m.confirm.id
			m.confirm = nil
			return m.execute(deleteNoteMsg{id: id})
		case key.Matches(msg, keys.no):
			m.confirm = nil
		}
		return nil
	}

	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.about) {
			m.showBuildInfo = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.tab):
		return m.cycleFocus(1)
	case key.Matches(msg, keys.backtab):
		return m.cycleFocus(-1)
	case key.Matches(msg, keys.reload):
		return m.reload()
	}

	cmd, actions := m.focus.Update(msg)
	return tea.Batch(cmd, m.dispatch(actions))
}

// dispatch executes command messages in order.
func (m *deskModel) dispatch(actions []tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, action := range actions {
		cmds = append(cmds, m.execute(action))
	}
	return tea.Batch(cmds...)
}

func (m *deskModel) execute(action tea.Msg) tea.Cmd {
	switch action := action.(type) {
	case createNoteMsg:
		return m.createNote()
	case openNoteMsg:
		return m.openNote(action.id)
	case updateNoteMsg:
		return m.updateNote(action.id, action.patch)
	case closeWindowMsg:
		return m.closeWindow(action.id)
	case requestDeleteMsg:
		m.confirm = &confirmModel{
			id:      action.id,
			message: preview.Snippet(firstLine(action.title), confirmTitleMax),
		}
	case deleteNoteMsg:
		return m.deleteNote(action.id)
	case filterChangedMsg:
		m.refreshToolbar()
	case statusMsg:
		return m.setStatus(action.text, action.warn)
	case aboutMsg:
		m.showBuildInfo = true
	case quitMsg:
		m.quitByUser = true
		return tea.Quit
	}
	return nil
}

func (m *deskModel) createNote() tea.Cmd {
	note, err := m.registry.Create(m.ctx)
	if note.ID == "" {
		m.logger.Err(err).Str("func", "deskModel.createNote").Msg("failed to create note")
		m.errorOverlay = &errorOverlayModel{message: humanizeStoreError(err)}
		return nil
	}

	cmd := m.openNote(note.ID)
	if err != nil {
		return tea.Batch(cmd, m.setStatus(humanizeStoreError(err), true))
	}
	return cmd
}

// openNote shows the window of id, creating it if needed. The window is
// built from the registry's current copy of the note.
func (m *deskModel) openNote(id string) tea.Cmd {
	note, err := m.registry.Update(m.ctx, id, models.VisibilityPatch(true))
	if errors.Is(err, service.ErrNoteNotFound) {
		m.removeWindow(id)
		m.refreshToolbar()
		return m.setStatus(humanizeStoreError(err), true)
	}

	w := m.window(id)
	if w == nil {
		w = newWindowModel(note, m.render)
		m.windows = append(m.windows, w)
	} else {
		w.SetNote(note)
	}
	m.layout()
	m.refreshToolbar()

	cmd := m.focusOn(w)
	if err != nil {
		return tea.Batch(cmd, m.setStatus(humanizeStoreError(err), true))
	}
	return cmd
}

func (m *deskModel) updateNote(id string, patch models.NotePatch) tea.Cmd {
	note, err := m.registry.Update(m.ctx, id, patch)
	if errors.Is(err, service.ErrNoteNotFound) {
		// deleted behind the window's back; never resurrect it
		m.removeWindow(id)
		m.refreshToolbar()
		return m.setStatus(humanizeStoreError(err), true)
	}

	if note.ID == "" {
		// rejected patch; put the window back to the registry's copy
		current, gerr := m.registry.Get(id)
		if gerr == nil {
			note = current
		}
	}
	if w := m.window(id); w != nil && note.ID != "" {
		w.SetNote(note)
		w.Layout(m.deskSize())
	}
	m.refreshToolbar()

	if err != nil {
		return m.setStatus(humanizeStoreError(err), true)
	}
	return nil
}

func (m *deskModel) closeWindow(id string) tea.Cmd {
	m.removeWindow(id)
	_, err := m.registry.Update(m.ctx, id, models.VisibilityPatch(false))
	m.refreshToolbar()

	if err != nil && !errors.Is(err, service.ErrNoteNotFound) {
		return m.setStatus(humanizeStoreError(err), true)
	}
	return nil
}

func (m *deskModel) deleteNote(id string) tea.Cmd {
	m.removeWindow(id)
	err := m.registry.Delete(m.ctx, id)
	m.refreshToolbar()

	if err != nil {
		return m.setStatus(humanizeStoreError(err), true)
	}
	return m.setStatus(app.MsgNoteDeleted, false)
}

func (m *deskModel) reload() tea.Cmd {
	if err := m.registry.Reload(m.ctx); err != nil {
		m.errorOverlay = &errorOverlayModel{message: humanizeStoreError(err)}
		return nil
	}

	m.pendingReload = false
	m.syncWindows()
	m.refreshToolbar()
	return m.setStatus(app.MsgReloaded, false)
}

// syncWindows makes the set of open windows match the notes marked visible.
func (m *deskModel) syncWindows() {
	visible := make(map[string]models.Note)
	var order []string
	for _, note := range m.registry.List("") {
		if note.Visible {
			visible[note.ID] = note
			order = append(order, note.ID)
		}
	}

	kept := m.windows[:0]
	for _, w := range m.windows {
		note, ok := visible[w.ID()]
		if !ok {
			m.dropFocus(w)
			continue
		}
		w.SetNote(note)
		kept = append(kept, w)
		delete(visible, w.ID())
	}
	m.windows = kept

	for _, id := range order {
		if note, ok := visible[id]; ok {
			m.windows = append(m.windows, newWindowModel(note, m.render))
		}
	}
	m.layout()
}

func (m *deskModel) window(id string) *windowModel {
	for _, w := range m.windows {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

func (m *deskModel) removeWindow(id string) {
	for i, w := range m.windows {
		if w.ID() == id {
			m.dropFocus(w)
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			return
		}
	}
}

func (m *deskModel) dropFocus(w *windowModel) {
	if m.focus == surface(w) {
		w.Blur()
		m.focus = m.toolbar
		m.toolbar.Focus()
	}
}

func (m *deskModel) focusOn(s surface) tea.Cmd {
	if m.focus != nil && m.focus != s {
		m.focus.Blur()
	}
	m.focus = s
	return s.Focus()
}

func (m *deskModel) surfaces() []surface {
	out := make([]surface, 0, len(m.windows)+1)
	out = append(out, m.toolbar)
	for _, w := range m.windows {
		out = append(out, w)
	}
	return out
}

func (m *deskModel) cycleFocus(delta int) tea.Cmd {
	all := m.surfaces()
	current := 0
	for i, s := range all {
		if s == m.focus {
			current = i
			break
		}
	}
	next := (current + delta + len(all)) % len(all)
	return m.focusOn(all[next])
}

func (m *deskModel) refreshToolbar() {
	m.toolbar.SetItems(m.registry.List(m.toolbar.Filter()))
}

func (m *deskModel) toolbarSize() int {
	if m.width < 2*toolbarWidth {
		return max(0, m.width/2)
	}
	return toolbarWidth
}

func (m *deskModel) deskSize() (int, int) {
	return max(0, m.width-m.toolbarSize()), max(0, m.height-1)
}

func (m *deskModel) layout() {
	deskW, deskH := m.deskSize()
	for _, w := range m.windows {
		w.Layout(deskW, deskH)
	}
	m.toolbar.SetSize(max(0, m.toolbarSize()-2), deskH)
}

func (m *deskModel) setStatus(text string, warn bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusWarn = warn

	ttl := statusTTL
	if warn {
		ttl = warningTTL
	}
	seq := m.statusSeq
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *deskModel) waitForWarning() tea.Cmd {
	ch := m.registry.Warnings()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return saveWarningMsg{err: err}
	}
}

func (m *deskModel) waitForChange() tea.Cmd {
	ch := m.session.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return externalChangeMsg{change: change}
	}
}

func (m *deskModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo, m.session.StorePath))
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	deskW, deskH := m.deskSize()
	canvas := blankCanvas(deskW, deskH)
	if len(m.windows) == 0 {
		hint := helpStyle.Render("No open notes · tab: toolbar · ctrl+a: new note")
		canvas = overlayCenter(canvas, hint, deskW, deskH)
	}

	// the focused window is drawn last so it is never hidden
	var focused *windowModel
	for _, w := range m.windows {
		if surface(w) == m.focus {
			focused = w
			continue
		}
		canvas = overlay(canvas, w.View(), w.rect.row, w.rect.col)
	}
	if focused != nil {
		canvas = overlay(canvas, focused.View(), focused.rect.row, focused.rect.col)
	}

	bar := toolbarStyle.
		Width(max(0, m.toolbarSize()-1)).
		Height(deskH).
		Render(m.toolbar.View())
	screen := lipgloss.JoinHorizontal(lipgloss.Top, canvas, bar)
	screen = clipLines(screen, m.width, deskH) + "\n" + m.statusLine()

	if m.confirm != nil {
		screen = overlayCenter(screen, m.confirm.View(), m.width, m.height)
	}
	if m.errorOverlay != nil {
		screen = overlayCenter(screen, m.errorOverlay.View(), m.width, m.height)
	}
	return screen
}

func (m *deskModel) statusLine() string {
	var parts []string
	if m.status != "" {
		if m.statusWarn {
			parts = append(parts, warnStyle.Render(m.status))
		} else {
			parts = append(parts, statusStyle.Render(m.status))
		}
	} else if m.pendingReload {
		parts = append(parts, warnStyle.Render("changed on disk"))
	}
	parts = append(parts, helpStyle.Render("tab focus · ctrl+a new · ctrl+r reload · ctrl+c quit"))

	return ansi.Truncate(strings.Join(parts, "  "), m.width, "")
}
