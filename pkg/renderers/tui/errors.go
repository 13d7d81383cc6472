package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidOutputFormat is returned for unknown output formats.
	ErrInvalidOutputFormat = errors.New("tui: invalid output format")
	// ErrSubmitBlocked is returned when the final submit still has errors.
	ErrSubmitBlocked = errors.New("tui: submit blocked by validation errors")
)
