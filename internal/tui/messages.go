package tui

import (
	"github.com/MKhiriev/go-sticky-notes/internal/store"
	"github.com/MKhiriev/go-sticky-notes/models"
)

// Command messages are returned by surfaces and executed by the desk in the
// same Update call, so edits reach the registry in the order they were typed.

type openNoteMsg struct {
	id string
}

type createNoteMsg struct{}

type updateNoteMsg struct {
	id    string
	patch models.NotePatch
}

type requestDeleteMsg struct {
	id    string
	title string
}

type deleteNoteMsg struct {
	id string
}

type closeWindowMsg struct {
	id string
}

type filterChangedMsg struct {
	filter string
}

type aboutMsg struct{}

type statusMsg struct {
	text string
	warn bool
}

type quitMsg struct{}

// Asynchronous messages delivered by bubbletea.

type externalChangeMsg struct {
	change store.ExternalChange
}

type saveWarningMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct {
	seq int
}
