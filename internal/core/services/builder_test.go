package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driven/index/fuzzy"
	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

func TestIndexBuilder_Build(t *testing.T) {
	e := newTestEngine(t, domain.DefaultEngineSettings(), nil)
	e.tabs.Set(
		domain.TabRecord{ID: "1", Title: "Inbox", URL: "https://mail.example.com"},
		domain.TabRecord{ID: "2", Title: "Settings", URL: "chrome://settings"},
	)
	e.bookmarks.Set(folder(
		domain.BookmarkNode{ID: "10", Title: "Go", URL: "https://go.dev"},
		domain.BookmarkNode{ID: "11", Title: "Folder", Children: []domain.BookmarkNode{
			{ID: "12", Title: "Nested", URL: "https://nested.example.org"},
		}},
	))
	e.history.Set(domain.HistoryRecord{ID: "99", Title: "News", URL: "https://news.example.net", LastVisitTime: hoursAgo(1)})

	require.NoError(t, e.builder.Build(context.Background()))

	gen := e.builder.Current()
	require.NotNil(t, gen)
	assert.Equal(t, uint64(1), gen.Number)
	assert.Equal(t, []string{"tab-1", "bookmark-10", "bookmark-12", "history-0-99"}, docIDs(gen.Documents))
	assert.Equal(t, 1, gen.Counts[domain.DocumentTypeTab], "chrome:// tabs are filtered")
	assert.Equal(t, 2, gen.Counts[domain.DocumentTypeBookmark])
	assert.Equal(t, 1, gen.Counts[domain.DocumentTypeHistory])
	assert.Equal(t, 4, gen.Index.Len())
}

func docIDs(docs []domain.IndexedDocument) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

// TestIndexBuilder_HistoryCappedPerDomain tests that only the newest items per domain are indexed
func TestIndexBuilder_HistoryCappedPerDomain(t *testing.T) {
	settings := domain.DefaultEngineSettings()
	settings.History.PerDomain = 2
	e := newTestEngine(t, settings, nil)
	e.history.Set(
		domain.HistoryRecord{ID: "a", Title: "A", URL: "https://www.example.com/a", LastVisitTime: hoursAgo(5)},
		domain.HistoryRecord{ID: "b", Title: "B", URL: "https://docs.example.com/b", LastVisitTime: hoursAgo(1)},
		domain.HistoryRecord{ID: "c", Title: "C", URL: "https://example.com/c", LastVisitTime: hoursAgo(3)},
		domain.HistoryRecord{ID: "d", Title: "D", URL: "https://other.org", LastVisitTime: hoursAgo(4)},
		domain.HistoryRecord{ID: "e", Title: "E", URL: "", LastVisitTime: hoursAgo(2)},
	)

	require.NoError(t, e.builder.Build(context.Background()))

	// The memory source returns newest first: b, e, c, d, a.
	assert.Equal(t, []string{"history-0-b", "history-2-c", "history-3-d"}, docIDs(e.builder.Current().Documents))
}

func TestIndexBuilder_HistoryWindow(t *testing.T) {
	e := newTestEngine(t, domain.DefaultEngineSettings(), nil)
	e.history.Set(
		domain.HistoryRecord{ID: "new", Title: "New", URL: "https://a.example.com", LastVisitTime: hoursAgo(1)},
		domain.HistoryRecord{ID: "old", Title: "Old", URL: "https://b.example.org", LastVisitTime: hoursAgo(24 * 45)},
	)

	require.NoError(t, e.builder.Build(context.Background()))

	assert.Equal(t, []string{"history-0-new"}, docIDs(e.builder.Current().Documents))
}

func TestIndexBuilder_KeepsEmptyURLTabsAndBookmarks(t *testing.T) {
	settings := domain.DefaultEngineSettings()
	settings.Browser.WebTabsOnly = false
	e := newTestEngine(t, settings, nil)
	e.tabs.Set(domain.TabRecord{ID: "1", Title: "Loading"})
	e.bookmarks.Set(domain.BookmarkNode{ID: "2", Title: "Broken", URL: " "})

	require.NoError(t, e.builder.Build(context.Background()))

	docs := e.builder.Current().Documents
	require.Len(t, docs, 2)
	assert.Equal(t, "", docs[0].URL)
	assert.Equal(t, "", docs[1].URL)
}

func TestIndexBuilder_DuplicateIDsSkipped(t *testing.T) {
	e := newTestEngine(t, domain.DefaultEngineSettings(), nil)
	e.tabs.Set(
		domain.TabRecord{ID: "1", Title: "First", URL: "https://a.example.com"},
		domain.TabRecord{ID: "1", Title: "Second", URL: "https://b.example.com"},
	)

	require.NoError(t, e.builder.Build(context.Background()))

	docs := e.builder.Current().Documents
	require.Len(t, docs, 1)
	assert.Equal(t, "First", docs[0].Title)
}

func TestIndexBuilder_ZeroDocuments(t *testing.T) {
	b := NewIndexBuilder(Sources{}, fuzzy.NewCompiler(fuzzy.Options{
		Fields: domain.DefaultEngineSettings().Fields, Threshold: 0.4,
	}), domain.DefaultEngineSettings(), nil)

	require.NoError(t, b.Build(context.Background()))

	stats := b.Stats()
	assert.True(t, stats.IsInitialised)
	assert.Equal(t, "0 documents", stats.IndexSize)
}

// TestIndexBuilder_FailureKeepsPreviousGeneration tests rebuild resilience
func TestIndexBuilder_FailureKeepsPreviousGeneration(t *testing.T) {
	e := newTestEngine(t, domain.DefaultEngineSettings(), nil)
	e.tabs.Set(domain.TabRecord{ID: "1", Title: "Inbox", URL: "https://mail.example.com"})
	require.NoError(t, e.builder.Build(context.Background()))
	first := e.builder.Current()

	e.bookmarks.Fail(errors.New("profile locked"))
	err := e.builder.Build(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceFetch))
	assert.Contains(t, err.Error(), "profile locked")
	assert.Same(t, first, e.builder.Current())

	stats := e.builder.Stats()
	assert.True(t, stats.IsInitialised)
	assert.Equal(t, uint64(1), stats.Generation)
	assert.Contains(t, stats.LastError, "bookmarks")

	e.bookmarks.Fail(nil)
	require.NoError(t, e.builder.Build(context.Background()))
	assert.Empty(t, e.builder.Stats().LastError)
	assert.Equal(t, uint64(2), e.builder.Current().Number)
}

// blockingTabs holds ListOpenTabs until released.
type blockingTabs struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingTabs) ListOpenTabs(ctx context.Context, _ domain.TabQuery) ([]domain.TabRecord, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
		return []domain.TabRecord{{ID: "1", Title: "Tab", URL: "https://example.com"}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TestIndexBuilder_ConcurrentBuildsCollapse tests that a build requested mid-rebuild is dropped
func TestIndexBuilder_ConcurrentBuildsCollapse(t *testing.T) {
	tabs := &blockingTabs{started: make(chan struct{}), release: make(chan struct{})}
	settings := domain.DefaultEngineSettings()
	b := NewIndexBuilder(Sources{Tabs: tabs}, newCountingCompiler(settings), settings, nil)

	done := make(chan error, 1)
	go func() { done <- b.Build(context.Background()) }()
	<-tabs.started

	err := b.Build(context.Background())
	assert.True(t, IsCollapsed(err))

	close(tabs.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("first build did not finish")
	}

	stats := b.Stats()
	assert.Equal(t, uint64(1), stats.RebuildsCollapsed)
	assert.Equal(t, uint64(1), stats.Generation)
}

func TestIndexBuilder_StatsBeforeBuild(t *testing.T) {
	e := newTestEngine(t, domain.DefaultEngineSettings(), nil)

	stats := e.builder.Stats()

	assert.False(t, stats.IsInitialised)
	assert.Nil(t, e.builder.Current())
	assert.Equal(t, "0 documents", stats.IndexSize)
}
