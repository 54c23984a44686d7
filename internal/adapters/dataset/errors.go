package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrLoadDataset    = errors.New("failed to load dataset")
	ErrEmptyDataset   = errors.New("dataset has no scrobbles")
	ErrMalformedEntry = errors.New("malformed scrobble entry")
	ErrInvalidDate    = errors.New("invalid scrobble date")
	ErrYearNotFound   = errors.New("dataset year not found")
)
