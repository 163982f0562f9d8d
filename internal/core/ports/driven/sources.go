package driven

import (
	"context"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// TabSource lists the browser's open pages.
type TabSource interface {
	// ListOpenTabs returns a snapshot of open tabs.
	// Fields the browser does not report are left empty.
	ListOpenTabs(ctx context.Context, query domain.TabQuery) ([]domain.TabRecord, error)
}

// BookmarkSource reads the bookmark tree.
type BookmarkSource interface {
	// BookmarkTree returns the root nodes of the bookmark tree.
	// Only nodes carrying a URL are bookmarks; the rest are folders.
	BookmarkTree(ctx context.Context) ([]domain.BookmarkNode, error)
}

// HistorySource queries browsing history.
type HistorySource interface {
	// SearchHistory returns history items matching the query, most recent first.
	SearchHistory(ctx context.Context, query domain.HistoryQuery) ([]domain.HistoryRecord, error)
}
