package palette

import "errors"

// Palette errors.
var (
	ErrInvalidColor = errors.New("invalid hex color")
)
