package fuzzy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
)

func testDocs() []domain.IndexedDocument {
	return []domain.IndexedDocument{
		{ID: "tab-1", Title: "GitHub", URL: "https://github.com", SearchText: "github github.com"},
		{ID: "tab-2", Title: "GitHub Actions Guide", URL: "https://docs.github.com/actions", SearchText: "github actions guide docs.github.com actions"},
		{ID: "bookmark-3", Title: "Weather Today", URL: "https://weather.example.com/today", SearchText: "weather today weather.example.com today"},
		{ID: "history-0-4", Title: "Mail", URL: "https://mail.example.com/inbox", SearchText: "mail mail.example.com inbox"},
	}
}

func compile(t *testing.T, threshold float64) driven.CompiledIndex {
	t.Helper()
	c := NewCompiler(Options{
		Fields:    domain.FieldWeights{Title: 0.6, SearchText: 0.3, URL: 0.1},
		Threshold: threshold,
	})
	idx, err := c.Compile(testDocs())
	require.NoError(t, err)
	return idx
}

func docIndexes(hits []driven.IndexHit) []int {
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.DocIndex
	}
	return out
}

func TestCompile_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"threshold above one", Options{Fields: domain.FieldWeights{Title: 1}, Threshold: 1.5}},
		{"negative weight", Options{Fields: domain.FieldWeights{Title: -1}, Threshold: 0.4}},
		{"all zero weights", Options{Threshold: 0.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompiler(tt.opts).Compile(testDocs())
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestIndex_Len(t *testing.T) {
	assert.Equal(t, 4, compile(t, 0.4).Len())
}

// TestSearch_ExactPhrase tests that a whole-field match beats containment
func TestSearch_ExactPhrase(t *testing.T) {
	hits, err := compile(t, 0.4).Search(`="github"`)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, []int{0, 1}, docIndexes(hits))
	assert.Less(t, hits[0].Score, hits[1].Score)
	assert.Contains(t, hits[0].Highlights, domain.Highlight{Field: domain.FieldTitle, Start: 0, End: 5})
}

func TestSearch_Prefix(t *testing.T) {
	hits, err := compile(t, 0.4).Search("^act")
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].DocIndex)
	assert.Contains(t, hits[0].Highlights, domain.Highlight{Field: domain.FieldTitle, Start: 7, End: 9})
}

func TestSearch_Inclusion(t *testing.T) {
	hits, err := compile(t, 0.4).Search("'inbox")
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, 3, hits[0].DocIndex)
	assert.Greater(t, hits[0].Score, 0.5, "title did not match so the score stays high")
}

func TestSearch_Fuzzy(t *testing.T) {
	hits, err := compile(t, 0.4).Search("wether")
	require.NoError(t, err)

	require.NotEmpty(t, hits)
	assert.Equal(t, 2, hits[0].DocIndex)
}

// TestSearch_FuzzyThreshold tests that a zero threshold rejects scattered matches
func TestSearch_FuzzyThreshold(t *testing.T) {
	loose, err := compile(t, 1).Search("gtb")
	require.NoError(t, err)
	strict, err := compile(t, 0).Search("gtb")
	require.NoError(t, err)

	assert.NotEmpty(t, loose)
	assert.Empty(t, strict)
}

func TestSearch_InvalidPatterns(t *testing.T) {
	idx := compile(t, 0.4)

	for _, p := range []string{`="github`, `=""`, "^", "'", "   "} {
		t.Run(p, func(t *testing.T) {
			_, err := idx.Search(p)
			assert.True(t, errors.Is(err, domain.ErrInvalidQuery))
		})
	}
}

func TestSearch_Deterministic(t *testing.T) {
	idx := compile(t, 0.4)

	first, err := idx.Search("example")
	require.NoError(t, err)
	second, err := idx.Search("example")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSpans(t *testing.T) {
	assert.Equal(t, []domain.Highlight{
		{Field: "title", Start: 0, End: 2},
		{Field: "title", Start: 5, End: 5},
	}, spans("title", "abcdef", []int{0, 1, 2, 5}))
}

func TestSpans_MultiByteRunes(t *testing.T) {
	assert.Equal(t, []domain.Highlight{
		{Field: "title", Start: 2, End: 4},
	}, spans("title", "café bar", []int{2, 3}))
}

func titleHighlight(t *testing.T, hits []driven.IndexHit) domain.Highlight {
	t.Helper()
	require.Len(t, hits, 1)
	for _, h := range hits[0].Highlights {
		if h.Field == domain.FieldTitle {
			return h
		}
	}
	t.Fatalf("no title highlight in %v", hits[0].Highlights)
	return domain.Highlight{}
}

// TestSearch_HighlightsUseOriginalOffsets tests that highlights index the
// original title when lower-casing changes a rune's width
func TestSearch_HighlightsUseOriginalOffsets(t *testing.T) {
	title := "İstanbul Guide"
	idx, err := NewCompiler(Options{
		Fields:    domain.FieldWeights{Title: 1},
		Threshold: 1,
	}).Compile([]domain.IndexedDocument{{ID: "bookmark-1", Title: title}})
	require.NoError(t, err)

	for _, pattern := range []string{"^guide", "'guide", "guide"} {
		t.Run(pattern, func(t *testing.T) {
			hits, err := idx.Search(pattern)
			require.NoError(t, err)

			h := titleHighlight(t, hits)
			assert.Equal(t, "Guide", title[h.Start:h.End+1])
		})
	}

	hits, err := idx.Search("^ist")
	require.NoError(t, err)
	h := titleHighlight(t, hits)
	assert.Equal(t, "İst", title[h.Start:h.End+1])
}

func TestLowerValue(t *testing.T) {
	lowered, origin := lowerValue("GitHub")
	assert.Equal(t, "github", lowered)
	assert.Nil(t, origin, "no table when widths are unchanged")

	lowered, origin = lowerValue("İx")
	assert.Equal(t, "ix", lowered)
	assert.Equal(t, []int{0, 2, 3}, origin)
}

func TestFuzzyDistance(t *testing.T) {
	assert.Equal(t, 0.0, fuzzyDistance([]int{0, 1, 2}, 10))
	assert.Equal(t, 1.0, fuzzyDistance(nil, 10))
	assert.InDelta(t, 0.1, fuzzyDistance([]int{5, 6}, 10), 1e-9)
}
