package driving

import "github.com/custodia-labs/sercha-palette/internal/core/domain"

// QuerySession sequences the keystrokes of one search UI.
// Only the result of the most recent query is ever delivered.
type QuerySession interface {
	// Input records the full current value of the query field.
	Input(raw string)

	// CompositionStart suspends searching while an input method composes text.
	CompositionStart()

	// CompositionEnd resumes searching with the composed value.
	CompositionEnd(raw string)

	// Flush submits the pending query immediately, skipping the debounce,
	// and returns once its result has been delivered or discarded.
	Flush()

	// Results delivers the latest query's result. Closed by Close.
	Results() <-chan domain.SessionResult

	// State returns the session's current state.
	State() domain.SessionState

	// Close discards pending work and closes Results.
	Close()
}

// SessionFactory opens query sessions.
type SessionFactory interface {
	NewSession() QuerySession
}
