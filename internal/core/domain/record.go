package domain

import "time"

// SourceRecord is a raw record from one of the browser sources.
// It is a closed set: TabRecord, BookmarkRecord and HistoryRecord.
type SourceRecord interface {
	// SourceType returns the document type the record normalises into.
	SourceType() DocumentType
}

// TabRecord is an open page as reported by the tab source.
type TabRecord struct {
	ID         string
	Title      string
	URL        string
	FaviconURL string
}

// SourceType implements SourceRecord.
func (TabRecord) SourceType() DocumentType { return DocumentTypeTab }

// BookmarkRecord is a bookmark leaf flattened out of the bookmark tree.
type BookmarkRecord struct {
	ID    string
	Title string
	URL   string
}

// SourceType implements SourceRecord.
func (BookmarkRecord) SourceType() DocumentType { return DocumentTypeBookmark }

// HistoryRecord is a visited page returned by the history source.
type HistoryRecord struct {
	// ID is the source-native identifier.
	ID string

	// Position is the record's index in the fetched result set.
	// History IDs are only stable within one fetch, so the position is
	// part of the document ID.
	Position int

	Title         string
	URL           string
	LastVisitTime time.Time
	VisitCount    int
}

// SourceType implements SourceRecord.
func (HistoryRecord) SourceType() DocumentType { return DocumentTypeHistory }

// BookmarkNode is one node of the bookmark tree.
// Nodes with a URL are bookmarks; nodes without one are folders.
type BookmarkNode struct {
	ID       string
	Title    string
	URL      string
	Children []BookmarkNode
}

// IsFolder returns true if the node carries no URL.
func (n BookmarkNode) IsFolder() bool {
	return n.URL == ""
}

// FlattenBookmarks walks the tree depth-first and returns every node with a URL.
// Folder nodes are traversed but never returned.
func FlattenBookmarks(roots []BookmarkNode) []BookmarkRecord {
	var out []BookmarkRecord
	var walk func(nodes []BookmarkNode)
	walk = func(nodes []BookmarkNode) {
		for i := range nodes {
			n := &nodes[i]
			if !n.IsFolder() {
				out = append(out, BookmarkRecord{ID: n.ID, Title: n.Title, URL: n.URL})
			}
			if len(n.Children) > 0 {
				walk(n.Children)
			}
		}
	}
	walk(roots)
	return out
}

// TabQuery filters the tab listing.
type TabQuery struct {
	// WebOnly restricts results to http and https pages.
	WebOnly bool

	// CurrentWindow restricts results to the focused window where the
	// source can tell windows apart.
	CurrentWindow bool
}

// HistoryQuery selects history items.
type HistoryQuery struct {
	// Text filters by title or URL substring. Empty matches everything.
	Text string

	// StartTime excludes items last visited before it.
	StartTime time.Time

	// MaxResults caps the number of items, most recent first.
	MaxResults int
}
