package tui

import "errors"

// Sentinel kinds for terminal explorer errors.
var (
	ErrNoSelection = errors.New("nothing selected")
	ErrClipboard   = errors.New("clipboard write failed")
)
