package store

import "errors"

var (
	// ErrNotFound is returned when no saved command line has the given name.
	ErrNotFound = errors.New("saved command not found")

	// ErrInvalidName is returned when a name cannot be used as a file stem.
	ErrInvalidName = errors.New("invalid command name")
)
