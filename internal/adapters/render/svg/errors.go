package svg

import "errors"

// ErrWrite is returned when the document cannot be written.
var ErrWrite = errors.New("write svg")
