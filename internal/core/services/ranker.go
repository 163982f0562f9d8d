package services

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/logger"
	"github.com/custodia-labs/sercha-palette/internal/metrics"
)

// Ranker runs query variants against a generation and orders the merged hits.
type Ranker struct {
	settings domain.EngineSettings
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewRanker creates a ranker. m may be nil.
func NewRanker(settings domain.EngineSettings, m *metrics.Metrics) *Ranker {
	return &Ranker{
		settings: settings,
		metrics:  m,
		log:      logger.Named("ranker"),
		now:      time.Now,
	}
}

// Rank scores every document hit by any variant of q and returns them
// ordered best first. q must already be trimmed and lower-cased.
// A variant that fails contributes nothing.
func (r *Ranker) Rank(gen *IndexGeneration, q string, variants []domain.QueryVariant) []domain.ScoredResult {
	if gen == nil || gen.Index == nil {
		return nil
	}
	now := r.now()

	var merged []domain.ScoredResult
	byID := make(map[string]int)
	for _, v := range variants {
		hits, err := gen.Index.Search(v.Pattern)
		if err != nil {
			r.metrics.VariantFailed()
			r.log.Debug("variant %s %q failed: %v", v.Kind, v.Pattern, err)
			continue
		}
		for _, hit := range hits {
			if hit.DocIndex < 0 || hit.DocIndex >= len(gen.Documents) {
				continue
			}
			doc := gen.Documents[hit.DocIndex]
			score := r.variantScore(doc, v, now) + (1-hit.Score)*100

			if i, ok := byID[doc.ID]; ok {
				if score > merged[i].Score {
					merged[i].Score = score
					merged[i].Highlights = hit.Highlights
				}
				continue
			}
			byID[doc.ID] = len(merged)
			merged = append(merged, domain.ScoredResult{
				Document:   doc,
				Score:      score,
				Highlights: hit.Highlights,
			})
		}
	}

	for i := range merged {
		merged[i].Score += r.finalBonus(merged[i].Document, q, now)
	}
	r.Order(merged, q)
	return merged
}

// variantScore is the custom relevance of doc for one variant, scaled by the
// variant's boost.
func (r *Ranker) variantScore(doc domain.IndexedDocument, v domain.QueryVariant, now time.Time) float64 {
	w := r.settings.Variant
	term := v.Term
	title := strings.ToLower(doc.Title)

	var score float64
	if title == term {
		score += w.ExactTitle
	} else {
		if strings.Contains(title, term) {
			score += w.TitleContains
		}
		if strings.HasPrefix(title, term) {
			score += w.TitlePrefix
		}
	}

	titleWords := strings.Fields(title)
	for _, qw := range strings.Fields(term) {
		switch {
		case containsWord(titleWords, qw):
			score += w.WordExact
		case strings.Contains(title, qw):
			score += w.WordPartial
		}
	}

	if strings.Contains(strings.ToLower(doc.URL), term) {
		score += w.URLContains
	}
	if strings.Contains(doc.SearchText, term) {
		score += w.SearchTextContains
	}
	if domainContains(doc.URL, term) {
		score += w.DomainContains
	}

	score += w.Types.For(doc.Type)
	if doc.IsHistory() {
		score += visitBonus(w.VisitCountFactor, doc.VisitCount)
		score += w.Recency.For(now, doc.LastVisitTime)
	}
	return score * v.Boost / 100
}

// finalBonus is the query-level pass applied once per merged result.
func (r *Ranker) finalBonus(doc domain.IndexedDocument, q string, now time.Time) float64 {
	f := r.settings.Final
	title := strings.ToLower(doc.Title)

	var bonus float64
	switch {
	case title == q:
		bonus += f.ExactTitle
	case strings.HasPrefix(title, q):
		bonus += f.TitlePrefix
	case strings.Contains(title, q):
		bonus += f.TitleContains
	}
	if domainContains(doc.URL, q) {
		bonus += f.DomainContains
	}

	bonus += f.Types.For(doc.Type)
	if doc.IsHistory() {
		bonus += visitBonus(f.VisitCountFactor, doc.VisitCount)
		bonus += f.Recency.For(now, doc.LastVisitTime)
	}

	n := utf8.RuneCountInString(doc.Title)
	switch {
	case f.ShortTitleLength > 0 && n <= f.ShortTitleLength:
		bonus += f.ShortTitleBonus
	case f.LongTitleLength > 0 && n > f.LongTitleLength:
		bonus -= f.LongTitlePenalty
	}
	return bonus
}

// Order sorts results best first. Results are cut into bands: a band starts
// at its highest score and holds every following result less than the tie
// band below it. Bands are ordered strictly by score; inside a band the
// tie-break rules apply, and finally document ID so the order is
// deterministic.
func (r *Ranker) Order(results []domain.ScoredResult, q string) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})

	band := r.settings.TieBand
	for start := 0; start < len(results); {
		end := start + 1
		for end < len(results) && results[start].Score-results[end].Score < band {
			end++
		}
		group := results[start:end]
		sort.SliceStable(group, func(i, j int) bool {
			return tieBreakLess(&group[i], &group[j], q)
		})
		start = end
	}
}

func tieBreakLess(a, b *domain.ScoredResult, q string) bool {
	at := strings.ToLower(a.Document.Title)
	bt := strings.ToLower(b.Document.Title)

	if ae, be := at == q, bt == q; ae != be {
		return ae
	}
	if ap, bp := strings.HasPrefix(at, q), strings.HasPrefix(bt, q); ap != bp {
		return ap
	}
	if ar, br := a.Document.Type.Rank(), b.Document.Type.Rank(); ar != br {
		return ar < br
	}
	if a.Document.IsHistory() && b.Document.IsHistory() {
		if a.Document.VisitCount != b.Document.VisitCount {
			return a.Document.VisitCount > b.Document.VisitCount
		}
		if !a.Document.LastVisitTime.Equal(b.Document.LastVisitTime) {
			return a.Document.LastVisitTime.After(b.Document.LastVisitTime)
		}
	}
	if al, bl := utf8.RuneCountInString(a.Document.Title), utf8.RuneCountInString(b.Document.Title); al != bl {
		return al < bl
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Document.ID < b.Document.ID
}

func visitBonus(factor float64, visits int) float64 {
	if visits <= 0 {
		return 0
	}
	return factor * math.Log10(1+float64(visits))
}

func containsWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

// domainContains reports whether the registrable domain of rawURL contains
// the query with its spaces removed.
func domainContains(rawURL, q string) bool {
	if rawURL == "" {
		return false
	}
	if _, ok := domain.Hostname(rawURL); !ok {
		return false
	}
	needle := strings.ReplaceAll(q, " ", "")
	if needle == "" {
		return false
	}
	return strings.Contains(domain.ExtractMainDomain(rawURL), needle)
}
