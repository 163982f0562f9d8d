package chrome

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound indicates the browser profile directory does not exist.
	ErrProfileNotFound = errors.New("chrome: profile not found")

	// ErrDevToolsUnavailable indicates the remote debugging endpoint could not be reached.
	ErrDevToolsUnavailable = errors.New("chrome: devtools endpoint unavailable")
)

// StatusError is returned when the DevTools endpoint answers with a non-200 status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chrome: %s returned status %d", e.URL, e.StatusCode)
}
