package expression

import "errors"

var (
	// ErrSessionStopped means the loop was cancelled; the pending result
	// must be dropped, never written to a torn-down surface.
	ErrSessionStopped = errors.New("detection session stopped")
)
