package services

import (
	"sort"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// Deduplicate removes repeated IDs, keeping the highest score, then caps
// how many history and bookmark results one registrable domain may
// contribute. Caps are filled in score order; the surviving results keep
// their input order. A cap of zero or less disables capping for that type.
func Deduplicate(results []domain.ScoredResult, caps domain.DomainCaps) []domain.ScoredResult {
	unique := make([]domain.ScoredResult, 0, len(results))
	byID := make(map[string]int, len(results))
	for _, r := range results {
		if i, ok := byID[r.Document.ID]; ok {
			if r.Score > unique[i].Score {
				unique[i] = r
			}
			continue
		}
		byID[r.Document.ID] = len(unique)
		unique = append(unique, r)
	}

	order := make([]int, len(unique))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := &unique[order[a]], &unique[order[b]]
		if ra.Score != rb.Score {
			return ra.Score > rb.Score
		}
		return ra.Document.ID < rb.Document.ID
	})

	type bucket struct {
		docType domain.DocumentType
		domain  string
	}
	counts := make(map[bucket]int)
	drop := make([]bool, len(unique))
	for _, i := range order {
		doc := unique[i].Document
		limit := capFor(doc.Type, caps)
		if limit <= 0 {
			continue
		}
		key := bucket{docType: doc.Type, domain: domain.ExtractMainDomain(doc.URL)}
		if counts[key] >= limit {
			drop[i] = true
			continue
		}
		counts[key]++
	}

	out := unique[:0]
	for i, r := range unique {
		if !drop[i] {
			out = append(out, r)
		}
	}
	return out
}

func capFor(t domain.DocumentType, caps domain.DomainCaps) int {
	switch t {
	case domain.DocumentTypeHistory:
		return caps.History
	case domain.DocumentTypeBookmark:
		return caps.Bookmark
	default:
		return 0
	}
}
