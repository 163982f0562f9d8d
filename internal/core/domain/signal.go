package domain

// MutationKind identifies a change reported by a browser source.
type MutationKind int

// Mutation kinds.
const (
	TabCreated MutationKind = iota
	TabRemoved
	TabUpdated
	BookmarkCreated
	BookmarkRemoved
	BookmarkChanged
	BookmarkMoved
	HistoryVisited
	HistoryVisitRemoved
)

// String returns the string representation.
func (k MutationKind) String() string {
	switch k {
	case TabCreated:
		return "tab_created"
	case TabRemoved:
		return "tab_removed"
	case TabUpdated:
		return "tab_updated"
	case BookmarkCreated:
		return "bookmark_created"
	case BookmarkRemoved:
		return "bookmark_removed"
	case BookmarkChanged:
		return "bookmark_changed"
	case BookmarkMoved:
		return "bookmark_moved"
	case HistoryVisited:
		return "history_visited"
	case HistoryVisitRemoved:
		return "history_visit_removed"
	default:
		return unknownDescription
	}
}

// Source returns the document type the mutation affects.
func (k MutationKind) Source() DocumentType {
	switch k {
	case TabCreated, TabRemoved, TabUpdated:
		return DocumentTypeTab
	case BookmarkCreated, BookmarkRemoved, BookmarkChanged, BookmarkMoved:
		return DocumentTypeBookmark
	default:
		return DocumentTypeHistory
	}
}

// MutationEvent is one change signal.
type MutationEvent struct {
	Kind MutationKind

	// ID is the source-native identifier of the changed item, if known.
	ID string

	// TitleChanged and URLChanged qualify TabUpdated events.
	// Updates that change neither do not affect the index.
	TitleChanged bool
	URLChanged   bool
}

// AffectsIndex reports whether the event can change indexed content.
func (e MutationEvent) AffectsIndex() bool {
	if e.Kind == TabUpdated {
		return e.TitleChanged || e.URLChanged
	}
	return true
}
