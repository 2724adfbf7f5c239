// Package sentinel holds the facts rule-set stores report about themselves.
// Services translate them; they never reach callers as-is.
package sentinel

import "errors"

var (
	// ErrNotFound means the store has no record for the requested key.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable means the store could not be asked.
	ErrUnavailable = errors.New("unavailable")
)
