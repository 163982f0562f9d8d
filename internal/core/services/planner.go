package services

import (
	"strings"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// prefixMinLength is the shortest word that gets a prefix variant.
const prefixMinLength = 3

// PlanQuery expands a trimmed, lower-cased query into the variants used to
// probe the index: the exact phrase, the whole query fuzzy, a word variant
// per word of at least minLength runes, then a prefix variant per word of at
// least prefixMinLength runes.
// Variants rendering to the same pattern are emitted once.
func PlanQuery(q string, minLength int, boosts domain.VariantBoosts) []domain.QueryVariant {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}

	var variants []domain.QueryVariant
	seen := make(map[string]bool)
	add := func(v domain.QueryVariant) {
		if v.Term == "" || seen[v.Pattern] {
			return
		}
		seen[v.Pattern] = true
		variants = append(variants, v)
	}

	phrase := strings.ReplaceAll(q, `"`, "")
	add(domain.QueryVariant{
		Kind:    domain.MatchExact,
		Term:    phrase,
		Pattern: `="` + phrase + `"`,
		Boost:   boosts.Exact,
	})
	add(domain.QueryVariant{
		Kind:    domain.MatchFuzzy,
		Term:    q,
		Pattern: q,
		Boost:   boosts.Fuzzy,
	})

	words := strings.Fields(phrase)
	for _, w := range words {
		if len([]rune(w)) >= minLength {
			add(domain.QueryVariant{
				Kind:    domain.MatchWord,
				Term:    w,
				Pattern: "'" + w,
				Boost:   boosts.Word,
			})
		}
	}
	for _, w := range words {
		if len([]rune(w)) >= prefixMinLength {
			add(domain.QueryVariant{
				Kind:    domain.MatchPrefix,
				Term:    w,
				Pattern: "^" + w,
				Boost:   boosts.Prefix,
			})
		}
	}
	return variants
}
