package service

import "errors"

var (
	ErrNoteNotFound = errors.New("note not found")

	ErrInvalidPatch = errors.New("invalid note patch")

	ErrIDCollision = errors.New("could not generate a unique note id")
)
