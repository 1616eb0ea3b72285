package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoController is returned when a loop is built without a session.
	ErrNoController = errors.New("prompt: session controller is required")
)
