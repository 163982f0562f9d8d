package driving

import (
	"context"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search ranks indexed documents against the query.
	// Queries below the minimum length, and searches before the first
	// successful rebuild, return an empty list rather than an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.ScoredResult, error)

	// BuildIndex rebuilds the index from the browser sources.
	// Safe to call concurrently; a call made while a rebuild runs is a no-op.
	BuildIndex(ctx context.Context) error

	// Stats describes the current index generation.
	Stats() domain.IndexStats
}
