package domain

import "time"

// Fields a highlight span can refer to.
const (
	FieldTitle      = "title"
	FieldSearchText = "searchText"
	FieldURL        = "url"
)

// Highlight marks a matched span inside one document field.
// Start and End are byte offsets; End is inclusive.
type Highlight struct {
	Field string
	Start int
	End   int
}

// ScoredResult is a document ranked against a query.
type ScoredResult struct {
	// Document is the matched document. History documents carry their
	// LastVisitTime and VisitCount through to the caller.
	Document IndexedDocument

	// Score is the final relevance score. Higher is better.
	Score float64

	// Highlights are optional matched spans for UI emphasis.
	Highlights []Highlight
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero uses the configured default.
	Limit int

	// NoSuggestions skips the remote suggestion source for this query.
	NoSuggestions bool
}

// MatchKind is the matching strategy of a query variant.
type MatchKind int

const (
	// MatchExact requires the whole phrase to appear in a field.
	MatchExact MatchKind = iota

	// MatchFuzzy performs approximate matching of the whole query.
	MatchFuzzy

	// MatchPrefix requires a word in a field to start with the term.
	MatchPrefix

	// MatchWord requires the term to appear anywhere in a field.
	MatchWord
)

// String returns the string representation.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchFuzzy:
		return "fuzzy"
	case MatchPrefix:
		return "prefix"
	case MatchWord:
		return "word"
	default:
		return unknownDescription
	}
}

// QueryVariant is one phrasing of the user's query used to probe the index.
type QueryVariant struct {
	// Kind is the matching strategy.
	Kind MatchKind

	// Term is the lower-cased text the variant looks for.
	Term string

	// Pattern is Term rendered in the index's extended search syntax.
	Pattern string

	// Boost is the variant's priority weight; 100 is the strongest.
	Boost float64
}

// IndexStats describes the current index generation.
type IndexStats struct {
	// IsInitialised is true once a rebuild has succeeded.
	IsInitialised bool

	// IndexSize is a human-readable size, e.g. "412 documents".
	IndexSize string

	// Documents is the total number of indexed documents.
	Documents int

	// Counts holds the number of documents per type.
	Counts map[DocumentType]int

	// Generation is the sequence number of the current generation.
	Generation uint64

	// BuiltAt is when the current generation was swapped in.
	BuiltAt time.Time

	// BuildDuration is how long the current generation took to build.
	BuildDuration time.Duration

	// RebuildsCollapsed counts rebuild requests dropped because one was in flight.
	RebuildsCollapsed uint64

	// LastError is the most recent rebuild failure, if any.
	LastError string
}
