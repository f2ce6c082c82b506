package errors

import "errors"

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrUnknownSource   = errors.New("unknown data source")
	ErrNoMatchingEntry = errors.New("no matching csv entry in archive")
)
