package models

import "errors"

// ErrInvalidNote is returned when a persisted note does not match the schema.
var ErrInvalidNote = errors.New("invalid note")
