package domain

import "time"

// UntitledTitle is used when a source provides no title.
const UntitledTitle = "Untitled"

// DocumentType identifies where an indexed document came from.
type DocumentType string

// Available document types.
const (
	// DocumentTypeTab is an open browser page.
	DocumentTypeTab DocumentType = "tab"

	// DocumentTypeBookmark is a saved bookmark.
	DocumentTypeBookmark DocumentType = "bookmark"

	// DocumentTypeHistory is a visited page from browsing history.
	DocumentTypeHistory DocumentType = "history"

	// DocumentTypeSuggestion is a remote search suggestion.
	// Suggestions are never indexed; they are merged into results at query time.
	DocumentTypeSuggestion DocumentType = "suggestion"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeTab, DocumentTypeBookmark, DocumentTypeHistory, DocumentTypeSuggestion:
		return true
	default:
		return false
	}
}

// Rank returns the type's position in the priority order
// tab, bookmark, history, suggestion. Lower ranks sort first.
func (t DocumentType) Rank() int {
	switch t {
	case DocumentTypeTab:
		return 0
	case DocumentTypeBookmark:
		return 1
	case DocumentTypeHistory:
		return 2
	case DocumentTypeSuggestion:
		return 3
	default:
		return 4
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// IndexedDocument is the unit of search.
// Every source record is normalised into this shape before indexing.
type IndexedDocument struct {
	// ID is unique within one index generation, e.g. "tab-17" or "history-3-998".
	ID string

	// Title is the display title. Never empty; defaults to UntitledTitle.
	Title string

	// URL is the absolute URL. May be empty for malformed tabs or bookmarks.
	URL string

	// Type is the source the document came from.
	Type DocumentType

	// Favicon is an optional icon URL.
	Favicon string

	// SearchText is the lower-cased title, host (without www.) and path
	// words. It is a secondary match target with a lower weight than Title.
	SearchText string

	// LastVisitTime is set for history documents only.
	LastVisitTime time.Time

	// VisitCount is set for history documents only.
	VisitCount int
}

// IsHistory reports whether the document carries visit data.
func (d IndexedDocument) IsHistory() bool {
	return d.Type == DocumentTypeHistory
}
