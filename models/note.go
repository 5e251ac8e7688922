// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Default geometry assigned to a freshly created note window, in pixels.
const (
	DefaultX      = 100
	DefaultY      = 100
	DefaultWidth  = 400
	DefaultHeight = 300

	// MinWidth and MinHeight bound resizing from the UI.
	MinWidth  = 200
	MinHeight = 150
)

// Position is the top-left corner of a note window.
type Position struct {
	X int
	Y int
}

// Size is the outer size of a note window.
type Size struct {
	Width  int
	Height int
}

// Note is a single sticky note.
//
// Extra holds JSON fields this version does not know about. They are kept
// verbatim so that files written by newer (or older) clients survive a
// load/save cycle.
type Note struct {
	// ID is assigned once at creation and never changes.
	ID string

	// Title is derived from the first lines of Content.
	Title string

	// Content is the serialized rich-text payload. It is opaque to the store.
	Content string

	Position Position
	Size     Size

	// Visible reports whether the note window is open.
	Visible bool

	Extra map[string]json.RawMessage
}

// NewNote returns a note with default content and geometry.
func NewNote(id string) Note {
	return Note{
		ID:       id,
		Position: Position{X: DefaultX, Y: DefaultY},
		Size:     Size{Width: DefaultWidth, Height: DefaultHeight},
	}
}

// Clone returns a deep copy of n. The registry hands out clones only, so
// callers can never mutate the authoritative copy.
func (n Note) Clone() Note {
	c := n
	if n.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(n.Extra))
		for k, v := range n.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// Apply merges the non-nil fields of p into n and reports whether content
// changed.
func (n *Note) Apply(p NotePatch) (contentChanged bool) {
	if p.Content != nil && *p.Content != n.Content {
		n.Content = *p.Content
		contentChanged = true
	}
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.Size != nil {
		n.Size = *p.Size
	}
	if p.Visible != nil {
		n.Visible = *p.Visible
	}
	return contentChanged
}

// Equal compares the persisted fields of two notes, unknown fields included.
func (n Note) Equal(o Note) bool {
	if n.ID != o.ID || n.Title != o.Title || n.Content != o.Content ||
		n.Position != o.Position || n.Size != o.Size || n.Visible != o.Visible {
		return false
	}
	if len(n.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range n.Extra {
		ov, ok := o.Extra[k]
		if !ok || !bytes.Equal(compactJSON(v), compactJSON(ov)) {
			return false
		}
	}
	return true
}

// noteJSON fixes the order of known keys in the document.
type noteJSON struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Visible bool   `json:"visible"`
}

var knownNoteKeys = map[string]struct{}{
	"id": {}, "title": {}, "content": {}, "x": {}, "y": {},
	"width": {}, "height": {}, "visible": {},
}

// MarshalJSON writes known fields first, then unknown fields sorted by key.
func (n Note) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(noteJSON{
		ID:      n.ID,
		Title:   n.Title,
		Content: n.Content,
		X:       n.Position.X,
		Y:       n.Position.Y,
		Width:   n.Size.Width,
		Height:  n.Size.Height,
		Visible: n.Visible,
	})
	if err != nil {
		return nil, err
	}

	keys := n.extraKeys()
	if len(keys) == 0 {
		return known, nil
	}

	var buf bytes.Buffer
	buf.Write(known[:len(known)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(n.Extra[k])
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON accepts documents written by any version of the app. Missing
// geometry falls back to the defaults, missing visibility means closed.
func (n *Note) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNote, err)
	}
	if fields == nil {
		return fmt.Errorf("%w: note is null", ErrInvalidNote)
	}

	out := NewNote("")

	rawID, ok := fields["id"]
	if !ok {
		return fmt.Errorf("%w: missing id", ErrInvalidNote)
	}
	if err := json.Unmarshal(rawID, &out.ID); err != nil || out.ID == "" {
		return fmt.Errorf("%w: id must be a non-empty string", ErrInvalidNote)
	}

	decoders := []struct {
		key string
		dst any
	}{
		{"title", &out.Title},
		{"content", &out.Content},
		{"x", &out.Position.X},
		{"y", &out.Position.Y},
		{"width", &out.Size.Width},
		{"height", &out.Size.Height},
		{"visible", &out.Visible},
	}
	for _, d := range decoders {
		raw, ok := fields[d.key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, d.dst); err != nil {
			return fmt.Errorf("%w: note %s: field %q: %v", ErrInvalidNote, out.ID, d.key, err)
		}
	}

	for k, v := range fields {
		if _, known := knownNoteKeys[k]; known {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = v
	}

	*n = out
	return nil
}

func (n Note) extraKeys() []string {
	keys := make([]string, 0, len(n.Extra))
	for k := range n.Extra {
		if _, known := knownNoteKeys[k]; known {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func compactJSON(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
