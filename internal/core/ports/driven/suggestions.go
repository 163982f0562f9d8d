package driven

import "context"

// SuggestionSource fetches query completions from a remote search engine.
// It is best-effort: callers must treat any error as "no suggestions".
type SuggestionSource interface {
	FetchSuggestions(ctx context.Context, query string) ([]string, error)
}
