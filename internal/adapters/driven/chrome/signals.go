package chrome

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-palette/internal/logger"
)

// Ensure SignalSource implements the interface.
var _ driven.SignalSource = (*SignalSource)(nil)

// tabLister is the part of TabSource the poller needs.
type tabLister interface {
	ListOpenTabs(ctx context.Context, q domain.TabQuery) ([]domain.TabRecord, error)
}

// SignalSource reports bookmark and history file changes in a profile
// directory and tab changes seen by polling the DevTools endpoint.
type SignalSource struct {
	profileDir   string
	tabs         tabLister
	tabQuery     domain.TabQuery
	pollInterval time.Duration
	log          *logger.Logger
}

// NewSignalSource creates a signal source. Tab polling is disabled when
// tabs is nil or pollInterval is not positive.
func NewSignalSource(profileDir string, tabs tabLister, q domain.TabQuery, pollInterval time.Duration) *SignalSource {
	return &SignalSource{
		profileDir:   profileDir,
		tabs:         tabs,
		tabQuery:     q,
		pollInterval: pollInterval,
		log:          logger.Named("signals"),
	}
}

// Subscribe starts watching. It fails only when neither the profile
// directory can be watched nor tab polling is enabled.
func (s *SignalSource) Subscribe(ctx context.Context) (<-chan domain.MutationEvent, error) {
	polling := s.tabs != nil && s.pollInterval > 0

	fsw, err := s.watch()
	if err != nil {
		if !polling {
			return nil, err
		}
		s.log.Warn("file signals unavailable, polling tabs only: %v", err)
	}

	out := make(chan domain.MutationEvent, 16)
	done := make(chan struct{}, 2)
	workers := 0

	if fsw != nil {
		workers++
		go func() {
			defer func() { done <- struct{}{} }()
			defer fsw.Close()
			s.watchLoop(ctx, fsw, out)
		}()
	}
	if polling {
		workers++
		go func() {
			defer func() { done <- struct{}{} }()
			s.pollLoop(ctx, out)
		}()
	}

	go func() {
		for i := 0; i < workers; i++ {
			<-done
		}
		close(out)
	}()
	return out, nil
}

func (s *SignalSource) watch() (*fsnotify.Watcher, error) {
	if s.profileDir == "" {
		return nil, errors.New("chrome: no profile directory")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(s.profileDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("%w: %w", ErrProfileNotFound, err)
	}
	return fsw, nil
}

func (s *SignalSource) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- domain.MutationEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			kind, ok := classify(event)
			if !ok {
				continue
			}
			if !send(ctx, out, domain.MutationEvent{Kind: kind}) {
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error: %v", err)
		}
	}
}

// classify maps a file event in the profile directory to a mutation.
// Chrome replaces Bookmarks by renaming a temporary file over it and
// appends to History and its journal on every visit.
func classify(event fsnotify.Event) (domain.MutationKind, bool) {
	changed := event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
	switch filepath.Base(event.Name) {
	case BookmarksFile:
		if changed {
			return domain.BookmarkChanged, true
		}
		if event.Op&fsnotify.Remove != 0 {
			return domain.BookmarkRemoved, true
		}
	case HistoryFile, HistoryFile + "-journal", HistoryFile + "-wal":
		if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
			return domain.HistoryVisited, true
		}
	}
	return 0, false
}

type tabState struct {
	title string
	url   string
}

func (s *SignalSource) pollLoop(ctx context.Context, out chan<- domain.MutationEvent) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	var last map[string]tabState
	for {
		current, err := s.snapshotTabs(ctx)
		switch {
		case err != nil:
			s.log.Debug("tab poll failed: %v", err)
		case last == nil:
			last = current
		default:
			for _, ev := range diffTabs(last, current) {
				if !send(ctx, out, ev) {
					return
				}
			}
			last = current
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *SignalSource) snapshotTabs(ctx context.Context) (map[string]tabState, error) {
	tabs, err := s.tabs.ListOpenTabs(ctx, s.tabQuery)
	if err != nil {
		return nil, err
	}
	snap := make(map[string]tabState, len(tabs))
	for _, t := range tabs {
		snap[t.ID] = tabState{title: t.Title, url: t.URL}
	}
	return snap, nil
}

// diffTabs reports created, removed and updated tabs between two polls.
// Updates are only reported when the title or URL changed.
func diffTabs(prev, next map[string]tabState) []domain.MutationEvent {
	var events []domain.MutationEvent
	for id, n := range next {
		p, ok := prev[id]
		if !ok {
			events = append(events, domain.MutationEvent{Kind: domain.TabCreated, ID: id})
			continue
		}
		if p != n {
			events = append(events, domain.MutationEvent{
				Kind:         domain.TabUpdated,
				ID:           id,
				TitleChanged: p.title != n.title,
				URLChanged:   p.url != n.url,
			})
		}
	}
	for id := range prev {
		if _, ok := next[id]; !ok {
			events = append(events, domain.MutationEvent{Kind: domain.TabRemoved, ID: id})
		}
	}
	return events
}

func send(ctx context.Context, out chan<- domain.MutationEvent, ev domain.MutationEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
