package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driven/index/fuzzy"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driven/memory"
	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
)

// countingCompiler wraps the fuzzy compiler and counts index searches.
type countingCompiler struct {
	inner    driven.IndexCompiler
	searches atomic.Int64
}

func newCountingCompiler(settings domain.EngineSettings) *countingCompiler {
	return &countingCompiler{
		inner: fuzzy.NewCompiler(fuzzy.Options{Fields: settings.Fields, Threshold: settings.FuzzyThreshold}),
	}
}

func (c *countingCompiler) Compile(docs []domain.IndexedDocument) (driven.CompiledIndex, error) {
	idx, err := c.inner.Compile(docs)
	if err != nil {
		return nil, err
	}
	return &countingIndex{inner: idx, searches: &c.searches}, nil
}

type countingIndex struct {
	inner    driven.CompiledIndex
	searches *atomic.Int64
}

func (i *countingIndex) Search(pattern string) ([]driven.IndexHit, error) {
	i.searches.Add(1)
	return i.inner.Search(pattern)
}

func (i *countingIndex) Len() int { return i.inner.Len() }

// testEngine bundles in-memory sources with a builder and search service.
type testEngine struct {
	tabs      *memory.TabSource
	bookmarks *memory.BookmarkSource
	history   *memory.HistorySource
	compiler  *countingCompiler
	builder   *IndexBuilder
	search    *SearchService
}

func newTestEngine(t *testing.T, settings domain.EngineSettings, suggestions driven.SuggestionSource) *testEngine {
	t.Helper()
	e := &testEngine{
		tabs:      memory.NewTabSource(),
		bookmarks: memory.NewBookmarkSource(),
		history:   memory.NewHistorySource(),
		compiler:  newCountingCompiler(settings),
	}
	e.builder = NewIndexBuilder(
		Sources{Tabs: e.tabs, Bookmarks: e.bookmarks, History: e.history},
		e.compiler, settings, nil,
	)
	e.search = NewSearchService(settings, e.builder, suggestions, nil)
	return e
}

func (e *testEngine) build(t *testing.T) {
	t.Helper()
	require.NoError(t, e.search.BuildIndex(context.Background()))
}

func (e *testEngine) query(t *testing.T, q string) []domain.ScoredResult {
	t.Helper()
	results, err := e.search.Search(context.Background(), q, domain.SearchOptions{})
	require.NoError(t, err)
	return results
}

func ids(results []domain.ScoredResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Document.ID
	}
	return out
}

func hoursAgo(h int) time.Time {
	return time.Now().Add(-time.Duration(h) * time.Hour)
}

func folder(children ...domain.BookmarkNode) domain.BookmarkNode {
	return domain.BookmarkNode{ID: "root", Title: "Bookmarks bar", Children: children}
}
