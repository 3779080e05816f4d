package dispatch

import "errors"

var (
	// ErrTerminate is returned by a target to ask the driving loop to stop.
	// The dispatcher passes it through unwrapped.
	ErrTerminate = errors.New("terminate requested")

	// ErrGUIUnavailable is returned when the reserved "gui" command is used
	// but no GUI hook was configured.
	ErrGUIUnavailable = errors.New("no gui hook configured")
)
