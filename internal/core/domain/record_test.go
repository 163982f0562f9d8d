package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceRecord_SourceType(t *testing.T) {
	assert.Equal(t, DocumentTypeTab, TabRecord{}.SourceType())
	assert.Equal(t, DocumentTypeBookmark, BookmarkRecord{}.SourceType())
	assert.Equal(t, DocumentTypeHistory, HistoryRecord{}.SourceType())
}

// TestFlattenBookmarks tests depth-first flattening that skips folders
func TestFlattenBookmarks(t *testing.T) {
	roots := []BookmarkNode{
		{
			ID:    "1",
			Title: "Bookmarks bar",
			Children: []BookmarkNode{
				{ID: "10", Title: "Go", URL: "https://go.dev"},
				{
					ID:    "11",
					Title: "Work",
					Children: []BookmarkNode{
						{ID: "110", Title: "Tracker", URL: "https://tracker.example.com"},
					},
				},
				{ID: "12", Title: "Docs", URL: "https://docs.example.com"},
			},
		},
		{ID: "2", Title: "Other bookmarks"},
	}

	got := FlattenBookmarks(roots)

	assert.Equal(t, []BookmarkRecord{
		{ID: "10", Title: "Go", URL: "https://go.dev"},
		{ID: "110", Title: "Tracker", URL: "https://tracker.example.com"},
		{ID: "12", Title: "Docs", URL: "https://docs.example.com"},
	}, got)
}

func TestFlattenBookmarks_Empty(t *testing.T) {
	assert.Empty(t, FlattenBookmarks(nil))
	assert.Empty(t, FlattenBookmarks([]BookmarkNode{{ID: "1", Title: "Empty folder"}}))
}

func TestBookmarkNode_IsFolder(t *testing.T) {
	assert.True(t, BookmarkNode{Title: "Folder"}.IsFolder())
	assert.False(t, BookmarkNode{URL: "https://example.com"}.IsFolder())
}
