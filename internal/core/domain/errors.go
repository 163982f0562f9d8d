package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidQuery indicates a query the index cannot parse,
	// such as an unterminated exact-phrase operator.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNotInitialised indicates no index generation has been built yet.
	ErrNotInitialised = errors.New("index not initialised")

	// ErrSourceFetch indicates a tab, bookmark or history source failed.
	// The rebuild that hit it is abandoned; the previous generation keeps serving.
	ErrSourceFetch = errors.New("source fetch failed")

	// ErrRebuildInProgress indicates a rebuild was requested while one was running.
	ErrRebuildInProgress = errors.New("rebuild in progress")

	// ErrSuggestionsUnavailable indicates the remote suggestion source
	// could not be reached or declined the request.
	ErrSuggestionsUnavailable = errors.New("suggestions unavailable")

	// ErrSessionClosed indicates a query session has been closed.
	ErrSessionClosed = errors.New("session closed")
)
