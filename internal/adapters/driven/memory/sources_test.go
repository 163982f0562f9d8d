package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

func TestTabSource_WebOnly(t *testing.T) {
	src := NewTabSource(
		domain.TabRecord{ID: "1", URL: "https://example.com"},
		domain.TabRecord{ID: "2", URL: "chrome://settings"},
		domain.TabRecord{ID: "3", URL: "http://localhost:8080"},
	)

	all, err := src.ListOpenTabs(context.Background(), domain.TabQuery{})
	require.NoError(t, err)
	web, err := src.ListOpenTabs(context.Background(), domain.TabQuery{WebOnly: true})
	require.NoError(t, err)

	assert.Len(t, all, 3)
	require.Len(t, web, 2)
	assert.Equal(t, "1", web[0].ID)
	assert.Equal(t, "3", web[1].ID)
}

func TestSources_Fail(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()

	tabs := NewTabSource()
	tabs.Fail(boom)
	_, err := tabs.ListOpenTabs(ctx, domain.TabQuery{})
	assert.ErrorIs(t, err, boom)

	bookmarks := NewBookmarkSource()
	bookmarks.Fail(boom)
	_, err = bookmarks.BookmarkTree(ctx)
	assert.ErrorIs(t, err, boom)

	bookmarks.Fail(nil)
	_, err = bookmarks.BookmarkTree(ctx)
	assert.NoError(t, err)

	history := NewHistorySource()
	history.Fail(boom)
	_, err = history.SearchHistory(ctx, domain.HistoryQuery{})
	assert.ErrorIs(t, err, boom)
}

func TestSources_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTabSource().ListOpenTabs(ctx, domain.TabQuery{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistorySource_Query(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	src := NewHistorySource(
		domain.HistoryRecord{ID: "1", Title: "Old", URL: "https://old.example.com", LastVisitTime: now.Add(-60 * 24 * time.Hour)},
		domain.HistoryRecord{ID: "2", Title: "News", URL: "https://news.example.com", LastVisitTime: now.Add(-2 * time.Hour)},
		domain.HistoryRecord{ID: "3", Title: "Mail", URL: "https://mail.example.com", LastVisitTime: now.Add(-1 * time.Hour)},
		domain.HistoryRecord{ID: "4", Title: "More news", URL: "https://other.example.org", LastVisitTime: now.Add(-3 * time.Hour)},
	)

	recent, err := src.SearchHistory(context.Background(), domain.HistoryQuery{StartTime: now.Add(-30 * 24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"3", "2", "4"}, []string{recent[0].ID, recent[1].ID, recent[2].ID})

	news, err := src.SearchHistory(context.Background(), domain.HistoryQuery{Text: "NEWS", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "2", news[0].ID)
}
