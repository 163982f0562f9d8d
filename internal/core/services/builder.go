package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-palette/internal/logger"
	"github.com/custodia-labs/sercha-palette/internal/metrics"
)

// IndexGeneration is one complete, immutable build of the searchable
// document set. Readers never mutate a generation they hold.
type IndexGeneration struct {
	Number    uint64
	Documents []domain.IndexedDocument
	Index     driven.CompiledIndex
	Counts    map[domain.DocumentType]int
	BuiltAt   time.Time
	Duration  time.Duration
}

// Sources groups the browser data sources. A nil source contributes no documents.
type Sources struct {
	Tabs      driven.TabSource
	Bookmarks driven.BookmarkSource
	History   driven.HistorySource
}

// IndexBuilder rebuilds the index from the sources and swaps each new
// generation in atomically. At most one rebuild runs at a time.
type IndexBuilder struct {
	sources  Sources
	compiler driven.IndexCompiler
	settings domain.EngineSettings
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time

	current   atomic.Pointer[IndexGeneration]
	building  atomic.Bool
	sequence  atomic.Uint64
	collapsed atomic.Uint64

	mu      sync.Mutex
	lastErr error
}

// NewIndexBuilder creates a builder. m may be nil.
func NewIndexBuilder(
	sources Sources,
	compiler driven.IndexCompiler,
	settings domain.EngineSettings,
	m *metrics.Metrics,
) *IndexBuilder {
	return &IndexBuilder{
		sources:  sources,
		compiler: compiler,
		settings: settings,
		metrics:  m,
		log:      logger.Named("builder"),
		now:      time.Now,
	}
}

// Current returns the serving generation, or nil before the first successful build.
func (b *IndexBuilder) Current() *IndexGeneration {
	return b.current.Load()
}

// Build fetches all sources concurrently, normalises and compiles the
// documents, then swaps the new generation in. If a rebuild is already
// running it returns domain.ErrRebuildInProgress without doing anything.
// On failure the previous generation keeps serving.
func (b *IndexBuilder) Build(ctx context.Context) error {
	if !b.building.CompareAndSwap(false, true) {
		b.collapsed.Add(1)
		b.metrics.RebuildFinished(metrics.OutcomeCollapsed, 0)
		b.log.Debug("rebuild already running, request dropped")
		return domain.ErrRebuildInProgress
	}
	defer b.building.Store(false)

	start := b.now()
	gen, err := b.build(ctx)
	if err != nil {
		b.setLastErr(err)
		b.metrics.RebuildFinished(metrics.OutcomeFailure, 0)
		b.log.Error("rebuild failed, keeping previous index: %v", err)
		return err
	}

	gen.Number = b.sequence.Add(1)
	gen.BuiltAt = b.now()
	gen.Duration = gen.BuiltAt.Sub(start)
	b.current.Store(gen)
	b.setLastErr(nil)

	b.metrics.RebuildFinished(metrics.OutcomeSuccess, gen.Duration)
	b.metrics.IndexSwapped(gen.Counts)
	b.log.Info("generation %d: %d documents (%d tabs, %d bookmarks, %d history) in %s",
		gen.Number, len(gen.Documents),
		gen.Counts[domain.DocumentTypeTab], gen.Counts[domain.DocumentTypeBookmark],
		gen.Counts[domain.DocumentTypeHistory], gen.Duration)
	return nil
}

func (b *IndexBuilder) build(ctx context.Context) (*IndexGeneration, error) {
	var (
		tabs    []domain.TabRecord
		roots   []domain.BookmarkNode
		history []domain.HistoryRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	if b.sources.Tabs != nil {
		g.Go(func() error {
			var err error
			tabs, err = b.sources.Tabs.ListOpenTabs(gctx, domain.TabQuery{WebOnly: b.settings.Browser.WebTabsOnly})
			if err != nil {
				return fmt.Errorf("%w: tabs: %w", domain.ErrSourceFetch, err)
			}
			return nil
		})
	}
	if b.sources.Bookmarks != nil {
		g.Go(func() error {
			var err error
			roots, err = b.sources.Bookmarks.BookmarkTree(gctx)
			if err != nil {
				return fmt.Errorf("%w: bookmarks: %w", domain.ErrSourceFetch, err)
			}
			return nil
		})
	}
	if b.sources.History != nil {
		g.Go(func() error {
			var err error
			history, err = b.sources.History.SearchHistory(gctx, domain.HistoryQuery{
				StartTime:  b.now().Add(-b.settings.History.Window),
				MaxResults: b.settings.History.MaxResults,
			})
			if err != nil {
				return fmt.Errorf("%w: history: %w", domain.ErrSourceFetch, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	b.log.Debug("fetched %d tabs, %d bookmark roots, %d history items", len(tabs), len(roots), len(history))

	docs := b.assemble(tabs, domain.FlattenBookmarks(roots), history)

	index, err := b.compiler.Compile(docs)
	if err != nil {
		return nil, fmt.Errorf("compile index: %w", err)
	}

	counts := make(map[domain.DocumentType]int)
	for i := range docs {
		counts[docs[i].Type]++
	}
	return &IndexGeneration{Documents: docs, Index: index, Counts: counts}, nil
}

// assemble normalises all records into one document list with unique IDs.
func (b *IndexBuilder) assemble(
	tabs []domain.TabRecord,
	bookmarks []domain.BookmarkRecord,
	history []domain.HistoryRecord,
) []domain.IndexedDocument {
	docs := make([]domain.IndexedDocument, 0, len(tabs)+len(bookmarks)+len(history))
	seen := make(map[string]bool)
	add := func(doc domain.IndexedDocument) {
		if seen[doc.ID] {
			b.log.Warn("duplicate document id %s skipped", doc.ID)
			return
		}
		seen[doc.ID] = true
		docs = append(docs, doc)
	}

	for _, t := range tabs {
		if t.URL == "" {
			b.log.Warn("tab %s has no URL", t.ID)
		}
		add(Normalise(t))
	}
	for _, bm := range bookmarks {
		if bm.URL == "" {
			b.log.Warn("bookmark %s has no URL", bm.ID)
		}
		add(Normalise(bm))
	}
	for _, h := range b.capHistory(history) {
		add(Normalise(h))
	}
	return docs
}

// capHistory numbers items by fetch position, drops items without a URL,
// and keeps the most recently visited items of each registrable domain
// up to the per-domain limit.
func (b *IndexBuilder) capHistory(items []domain.HistoryRecord) []domain.HistoryRecord {
	numbered := make([]domain.HistoryRecord, 0, len(items))
	for i, h := range items {
		if h.URL == "" {
			b.log.Warn("history item %s has no URL, dropped", h.ID)
			continue
		}
		h.Position = i
		numbered = append(numbered, h)
	}
	sort.SliceStable(numbered, func(i, j int) bool {
		return numbered[i].LastVisitTime.After(numbered[j].LastVisitTime)
	})

	limit := b.settings.History.PerDomain
	if limit <= 0 {
		return numbered
	}
	perDomain := make(map[string]int)
	kept := numbered[:0]
	for _, h := range numbered {
		d := domain.ExtractMainDomain(h.URL)
		if perDomain[d] >= limit {
			continue
		}
		perDomain[d]++
		kept = append(kept, h)
	}
	if dropped := len(numbered) - len(kept); dropped > 0 {
		b.log.Debug("history capped to %d per domain, %d items dropped", limit, dropped)
	}
	return kept
}

func (b *IndexBuilder) setLastErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = err
}

// Stats describes the serving generation.
func (b *IndexBuilder) Stats() domain.IndexStats {
	stats := domain.IndexStats{
		IndexSize:         "0 documents",
		Counts:            map[domain.DocumentType]int{},
		RebuildsCollapsed: b.collapsed.Load(),
	}

	b.mu.Lock()
	if b.lastErr != nil {
		stats.LastError = b.lastErr.Error()
	}
	b.mu.Unlock()

	gen := b.current.Load()
	if gen == nil {
		return stats
	}
	stats.IsInitialised = true
	stats.Documents = len(gen.Documents)
	stats.IndexSize = fmt.Sprintf("%d documents", len(gen.Documents))
	for t, n := range gen.Counts {
		stats.Counts[t] = n
	}
	stats.Generation = gen.Number
	stats.BuiltAt = gen.BuiltAt
	stats.BuildDuration = gen.Duration
	return stats
}

// IsCollapsed reports whether err is the result of a dropped concurrent rebuild request.
func IsCollapsed(err error) bool {
	return errors.Is(err, domain.ErrRebuildInProgress)
}
