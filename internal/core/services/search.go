package services

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-palette/internal/logger"
	"github.com/custodia-labs/sercha-palette/internal/metrics"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks browser documents against a query.
// It always reads whatever generation is currently swapped in and never
// waits for a running rebuild.
type SearchService struct {
	settings    domain.EngineSettings
	builder     *IndexBuilder
	ranker      *Ranker
	suggestions driven.SuggestionSource
	metrics     *metrics.Metrics
	log         *logger.Logger
}

// NewSearchService creates a new search service.
// The suggestions source and metrics are optional (can be nil).
func NewSearchService(
	settings domain.EngineSettings,
	builder *IndexBuilder,
	suggestions driven.SuggestionSource,
	m *metrics.Metrics,
) *SearchService {
	return &SearchService{
		settings:    settings,
		builder:     builder,
		ranker:      NewRanker(settings, m),
		suggestions: suggestions,
		metrics:     m,
		log:         logger.Named("search"),
	}
}

// Search returns ranked, deduplicated results for the query.
// The only error it returns is the context's.
func (s *SearchService) Search(
	ctx context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.ScoredResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < s.settings.MinQueryLength || q == "" {
		return []domain.ScoredResult{}, nil
	}

	gen := s.builder.Current()
	if gen == nil {
		s.log.Warn("search before the index was built, returning no results")
		return []domain.ScoredResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.settings.DefaultLimit
	}

	start := time.Now()

	var suggestions []string
	var g errgroup.Group
	if s.wantSuggestions(opts) {
		g.Go(func() error {
			suggestions = s.fetchSuggestions(ctx, q)
			return nil
		})
	}

	variants := PlanQuery(q, s.settings.MinQueryLength, s.settings.Boosts)
	results := Deduplicate(s.ranker.Rank(gen, q, variants), s.settings.Caps)
	if len(results) > limit {
		results = results[:limit]
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results = s.appendSuggestions(results, suggestions, limit)
	s.metrics.SearchFinished(time.Since(start), len(results))
	s.log.Debug("%q: %d variants, %d results against generation %d", q, len(variants), len(results), gen.Number)
	return results, nil
}

func (s *SearchService) wantSuggestions(opts domain.SearchOptions) bool {
	return s.suggestions != nil && s.settings.Suggestions.Enabled && !opts.NoSuggestions &&
		s.settings.Suggestions.Max > 0
}

// fetchSuggestions asks the remote source under its own timeout.
// Failures are logged and yield no suggestions.
func (s *SearchService) fetchSuggestions(ctx context.Context, q string) []string {
	timeout := s.settings.Suggestions.Timeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := s.suggestions.FetchSuggestions(ctx, q)
	if err != nil {
		s.metrics.SuggestionFailed()
		if !errors.Is(err, context.Canceled) {
			s.log.Debug("suggestions for %q unavailable: %v", q, err)
		}
		return nil
	}
	return out
}

// appendSuggestions fills the slots left after the local results with
// suggestion pseudo-documents scored strictly below every real result and
// outside its tie band.
func (s *SearchService) appendSuggestions(results []domain.ScoredResult, suggestions []string, limit int) []domain.ScoredResult {
	room := limit - len(results)
	if room <= 0 || len(suggestions) == 0 {
		return results
	}
	if room > s.settings.Suggestions.Max {
		room = s.settings.Suggestions.Max
	}

	base := float64(s.settings.Suggestions.Max)
	if len(results) > 0 {
		lowest := results[0].Score
		for _, r := range results[1:] {
			if r.Score < lowest {
				lowest = r.Score
			}
		}
		base = lowest - s.settings.TieBand - 1
	}

	seen := make(map[string]bool)
	for _, text := range suggestions {
		if room == 0 {
			break
		}
		text = strings.TrimSpace(text)
		key := strings.ToLower(text)
		if text == "" || seen[key] {
			continue
		}
		seen[key] = true
		i := len(seen) - 1
		results = append(results, domain.ScoredResult{
			Document: domain.IndexedDocument{
				ID:         "suggestion-" + strconv.Itoa(i),
				Title:      text,
				URL:        s.settings.Suggestions.SearchURL + url.QueryEscape(text),
				Type:       domain.DocumentTypeSuggestion,
				SearchText: key,
			},
			Score: base - float64(i),
		})
		room--
	}
	return results
}

// BuildIndex rebuilds the index. A call made while a rebuild is running
// returns nil without rebuilding.
func (s *SearchService) BuildIndex(ctx context.Context) error {
	if err := s.builder.Build(ctx); err != nil && !IsCollapsed(err) {
		return err
	}
	return nil
}

// Stats describes the current index generation.
func (s *SearchService) Stats() domain.IndexStats {
	return s.builder.Stats()
}
