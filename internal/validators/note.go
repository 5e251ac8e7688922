package validators

import (
	"context"

	"github.com/MKhiriev/go-sticky-notes/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the note identifier.
	FieldID = "id"

	// FieldSize targets the window size of a note or patch.
	FieldSize = "size"
)

// NoteValidator implements [Validator] for [models.Note] and
// [models.NotePatch], by value or by pointer.
//
// Positions are never checked: a window may sit partly off screen.
type NoteValidator struct{}

func NewNoteValidator() Validator {
	return &NoteValidator{}
}

func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Note:
		return v.validateNote(ctx, value, fields...)
	case *models.Note:
		return v.validateNote(ctx, *value, fields...)

	case models.NotePatch:
		return v.validatePatch(ctx, value, fields...)
	case *models.NotePatch:
		return v.validatePatch(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *NoteValidator) validateNote(ctx context.Context, note models.Note, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldSize}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if note.ID == "" {
				return ErrEmptyID
			}
		case FieldSize:
			if !validSize(note.Size) {
				return ErrInvalidSize
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePatch checks only the fields the patch sets. An empty patch is
// valid.
func (v *NoteValidator) validatePatch(ctx context.Context, patch models.NotePatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSize}
	}

	for _, f := range fields {
		switch f {
		case FieldSize:
			if patch.Size != nil && !validSize(*patch.Size) {
				return ErrInvalidSize
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validSize(size models.Size) bool {
	return size.Width > 0 && size.Height > 0
}
