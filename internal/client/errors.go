package client

import "errors"

// ErrUserDeclined is returned when the user refuses a startup fallback.
var ErrUserDeclined = errors.New("user declined to continue")
