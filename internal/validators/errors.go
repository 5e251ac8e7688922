package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID     = errors.New("note id is required")
	ErrInvalidSize = errors.New("note size must be positive")
)
