package driven

import "github.com/custodia-labs/sercha-palette/internal/core/domain"

// IndexCompiler builds a searchable structure from a document list.
type IndexCompiler interface {
	// Compile indexes the documents. The compiled index refers to
	// documents by their position in docs.
	Compile(docs []domain.IndexedDocument) (CompiledIndex, error)
}

// CompiledIndex is an immutable, concurrently readable search structure.
//
// Patterns use an extended syntax:
//
//	="phrase"  the whole phrase must appear in a field
//	^term      a word in a field must start with term
//	'term      term must appear anywhere in a field
//	text       approximate match of text
type CompiledIndex interface {
	// Search returns hits ordered best first.
	// A malformed pattern returns an error wrapping domain.ErrInvalidQuery.
	Search(pattern string) ([]IndexHit, error)

	// Len returns the number of indexed documents.
	Len() int
}

// IndexHit is one document matched by a pattern.
type IndexHit struct {
	// DocIndex is the position of the document in the compiled list.
	DocIndex int

	// Score is the weighted match distance: 0 is a perfect match, 1 is no match.
	Score float64

	// Highlights are the matched spans.
	Highlights []domain.Highlight
}
