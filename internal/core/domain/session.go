package domain

// SessionState is the state of a query session.
type SessionState int

const (
	// SessionIdle means there is no query.
	SessionIdle SessionState = iota

	// SessionDebouncing means input arrived and the debounce timer is running.
	SessionDebouncing

	// SessionQuerying means a query was submitted and its result is pending.
	SessionQuerying

	// SessionDelivered means the latest query's result was delivered.
	SessionDelivered
)

// String returns the string representation.
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionDebouncing:
		return "debouncing"
	case SessionQuerying:
		return "querying"
	case SessionDelivered:
		return "delivered"
	default:
		return unknownDescription
	}
}

// SessionResult is delivered by a query session for the most recent query.
type SessionResult struct {
	// Query is the trimmed query that produced the results.
	Query string

	// Results are the ranked results.
	Results []ScoredResult

	// Sequence is the query's submission sequence number.
	Sequence uint64
}
