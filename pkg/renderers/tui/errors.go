package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined
	// to submit.
	ErrAborted = errors.New("tui: aborted")
	// ErrStillInvalid is returned when the form is invalid after the
	// configured number of passes.
	ErrStillInvalid = errors.New("tui: form is still invalid")
	// ErrNoSubmit is returned when no enabled action can submit the form.
	ErrNoSubmit = errors.New("tui: no enabled submit action")
)
