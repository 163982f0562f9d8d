package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
)

// Ensure the sources implement their interfaces.
var (
	_ driven.TabSource      = (*TabSource)(nil)
	_ driven.BookmarkSource = (*BookmarkSource)(nil)
	_ driven.HistorySource  = (*HistorySource)(nil)
)

// TabSource serves a fixed, replaceable list of tabs.
type TabSource struct {
	mu   sync.RWMutex
	tabs []domain.TabRecord
	err  error
}

// NewTabSource creates a tab source holding tabs.
func NewTabSource(tabs ...domain.TabRecord) *TabSource {
	return &TabSource{tabs: tabs}
}

// Set replaces the tabs.
func (s *TabSource) Set(tabs ...domain.TabRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs = tabs
}

// Fail makes subsequent listings return err. A nil err clears it.
func (s *TabSource) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// ListOpenTabs returns the tabs, keeping only http(s) pages when q.WebOnly is set.
func (s *TabSource) ListOpenTabs(ctx context.Context, q domain.TabQuery) ([]domain.TabRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}

	out := make([]domain.TabRecord, 0, len(s.tabs))
	for _, t := range s.tabs {
		if q.WebOnly && !isWebURL(t.URL) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func isWebURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// BookmarkSource serves a fixed bookmark tree.
type BookmarkSource struct {
	mu    sync.RWMutex
	roots []domain.BookmarkNode
	err   error
}

// NewBookmarkSource creates a bookmark source with the given roots.
func NewBookmarkSource(roots ...domain.BookmarkNode) *BookmarkSource {
	return &BookmarkSource{roots: roots}
}

// Set replaces the tree.
func (s *BookmarkSource) Set(roots ...domain.BookmarkNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roots = roots
}

// Fail makes subsequent reads return err. A nil err clears it.
func (s *BookmarkSource) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// BookmarkTree returns the tree.
func (s *BookmarkSource) BookmarkTree(ctx context.Context) ([]domain.BookmarkNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.roots, nil
}

// HistorySource serves a fixed list of history items.
type HistorySource struct {
	mu    sync.RWMutex
	items []domain.HistoryRecord
	err   error
}

// NewHistorySource creates a history source holding items.
func NewHistorySource(items ...domain.HistoryRecord) *HistorySource {
	return &HistorySource{items: items}
}

// Set replaces the items.
func (s *HistorySource) Set(items ...domain.HistoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

// Fail makes subsequent searches return err. A nil err clears it.
func (s *HistorySource) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SearchHistory filters by text and start time, newest first, capped at MaxResults.
func (s *HistorySource) SearchHistory(ctx context.Context, q domain.HistoryQuery) ([]domain.HistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}

	text := strings.ToLower(q.Text)
	var out []domain.HistoryRecord
	for _, item := range s.items {
		if !q.StartTime.IsZero() && item.LastVisitTime.Before(q.StartTime) {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(item.Title), text) &&
			!strings.Contains(strings.ToLower(item.URL), text) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastVisitTime.After(out[j].LastVisitTime)
	})
	if q.MaxResults > 0 && len(out) > q.MaxResults {
		out = out[:q.MaxResults]
	}
	return out, nil
}
