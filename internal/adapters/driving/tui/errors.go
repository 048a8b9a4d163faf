package tui

import "errors"

// ErrCancelled is returned when the user aborts the prompt.
var ErrCancelled = errors.New("tui: cancelled")
