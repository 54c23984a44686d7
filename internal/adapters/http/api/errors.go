package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrServe     = errors.New("observability server failed")
	ErrMethod    = errors.New("method not allowed")
	ErrNoSession = errors.New("no session is running")
)
