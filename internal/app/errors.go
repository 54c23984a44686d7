package service

import "errors"

// Controller errors.
var (
	ErrInvalidSettings     = errors.New("invalid settings")
	ErrNoEvents            = errors.New("no events to explore")
	ErrMissingCollaborator = errors.New("missing collaborator")
	ErrUnknownEvent        = errors.New("event index out of range")
	ErrNotFound            = errors.New("no visible scrobble matches")
)
