package fuzzy

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
)

// Ensure Compiler implements the interface.
var _ driven.IndexCompiler = (*Compiler)(nil)

// Ensure Index implements the interface.
var _ driven.CompiledIndex = (*Index)(nil)

// Distances for operator matches that are weaker than a whole-field match.
const (
	phraseContainedDistance = 0.05
	laterWordPrefixDistance = 0.1
	inclusionDistance       = 0.1
)

// Options configures compilation.
type Options struct {
	// Fields are the relative field weights.
	Fields domain.FieldWeights

	// Threshold is the largest fuzzy distance accepted, in [0,1].
	// 0 accepts only contiguous matches at the start of a field.
	Threshold float64
}

// Compiler builds Index values.
type Compiler struct {
	opts Options
}

// NewCompiler creates a compiler with the given options.
func NewCompiler(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// Compile builds an immutable index over the documents.
func (c *Compiler) Compile(docs []domain.IndexedDocument) (driven.CompiledIndex, error) {
	if c.opts.Threshold < 0 || c.opts.Threshold > 1 {
		return nil, fmt.Errorf("%w: fuzzy threshold %v outside [0,1]", domain.ErrInvalidInput, c.opts.Threshold)
	}
	weights := [numFields]float64{c.opts.Fields.Title, c.opts.Fields.SearchText, c.opts.Fields.URL}
	var total float64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative field weight", domain.ErrInvalidInput)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: all field weights are zero", domain.ErrInvalidInput)
	}

	idx := &Index{
		threshold: c.opts.Threshold,
		weights:   weights,
		total:     total,
		size:      len(docs),
	}
	for f, name := range fieldNames {
		col := column{name: name, values: make([]string, len(docs))}
		for i := range docs {
			lowered, origin := lowerValue(fieldValue(&docs[i], f))
			col.values[i] = lowered
			if origin != nil {
				if col.origins == nil {
					col.origins = make(map[int][]int)
				}
				col.origins[i] = origin
			}
		}
		idx.columns[f] = col
	}
	return idx, nil
}

const numFields = 3

var fieldNames = [numFields]string{domain.FieldTitle, domain.FieldSearchText, domain.FieldURL}

func fieldValue(d *domain.IndexedDocument, f int) string {
	switch f {
	case 0:
		return d.Title
	case 1:
		return d.SearchText
	default:
		return d.URL
	}
}

// column holds one lower-cased field of every document.
// It implements fuzzy.Source.
type column struct {
	name   string
	values []string

	// origins maps lowered byte offsets back to the original value, for the
	// documents whose lower-casing changed the width of some rune.
	origins map[int][]int
}

// original translates a highlight on the lowered value of doc into byte
// offsets of the original field value.
func (c column) original(doc int, h domain.Highlight) domain.Highlight {
	origin, ok := c.origins[doc]
	if !ok {
		return h
	}
	end := h.End + 1
	for origin[end] == origin[h.End] {
		end++
	}
	h.Start, h.End = origin[h.Start], origin[end]-1
	return h
}

// lowerValue lower-cases s the way strings.ToLower does. When a rune's
// encoded width changes it also returns, for every byte of the result, the
// offset in s of the rune it came from, followed by len(s).
func lowerValue(s string) (string, []int) {
	lowered := strings.ToLower(s)
	if !widthChanged(s) {
		return lowered, nil
	}

	var b strings.Builder
	origin := make([]int, 0, len(lowered)+1)
	for i, r := range s {
		n, _ := b.WriteRune(unicode.ToLower(r))
		for range n {
			origin = append(origin, i)
		}
	}
	origin = append(origin, len(s))
	return b.String(), origin
}

func widthChanged(s string) bool {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size != utf8.RuneLen(r) {
				return true
			}
			continue
		}
		if utf8.RuneLen(unicode.ToLower(r)) != utf8.RuneLen(r) {
			return true
		}
	}
	return false
}

func (c column) String(i int) string { return c.values[i] }
func (c column) Len() int            { return len(c.values) }

// Index is a compiled, read-only search structure. It is safe for
// concurrent use.
type Index struct {
	columns   [numFields]column
	weights   [numFields]float64
	total     float64
	threshold float64
	size      int
}

// Len returns the number of indexed documents.
func (x *Index) Len() int {
	return x.size
}

// Search runs one pattern and returns hits ordered best first.
// Highlight offsets are byte offsets into the original field values.
func (x *Index) Search(pattern string) ([]driven.IndexHit, error) {
	op, term, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}

	fields := make([]fieldMatch, x.size*numFields)
	for f := range x.columns {
		if x.weights[f] == 0 {
			continue
		}
		if op == opFuzzy {
			x.fuzzyColumn(f, term, fields)
			continue
		}
		for i, v := range x.columns[f].values {
			if m, ok := matchOperator(op, v, term); ok {
				m.highlight = x.columns[f].original(i, m.highlight)
				m.highlight.Field = x.columns[f].name
				fields[i*numFields+f] = m
			}
		}
	}

	var hits []driven.IndexHit
	for i := 0; i < x.size; i++ {
		var sum float64
		var matched bool
		var highlights []domain.Highlight
		for f := 0; f < numFields; f++ {
			m := fields[i*numFields+f]
			if !m.ok {
				sum += x.weights[f]
				continue
			}
			matched = true
			sum += x.weights[f] * m.distance
			if m.highlights != nil {
				highlights = append(highlights, m.highlights...)
			} else {
				highlights = append(highlights, m.highlight)
			}
		}
		if matched {
			hits = append(hits, driven.IndexHit{
				DocIndex:   i,
				Score:      sum / x.total,
				Highlights: highlights,
			})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score < hits[b].Score
		}
		return hits[a].DocIndex < hits[b].DocIndex
	})
	return hits, nil
}

type fieldMatch struct {
	ok         bool
	distance   float64
	highlight  domain.Highlight
	highlights []domain.Highlight
}

func (x *Index) fuzzyColumn(f int, term string, out []fieldMatch) {
	col := x.columns[f]
	for _, m := range fuzzy.FindFrom(term, col) {
		d := fuzzyDistance(m.MatchedIndexes, len(col.values[m.Index]))
		if d > x.threshold {
			continue
		}
		out[m.Index*numFields+f] = fieldMatch{
			ok:         true,
			distance:   d,
			highlights: col.originalSpans(m.Index, spans(col.name, col.values[m.Index], m.MatchedIndexes)),
		}
	}
}

// fuzzyDistance scores a match by how spread out the matched characters
// are and how late the match starts.
func fuzzyDistance(matched []int, fieldLen int) float64 {
	if len(matched) == 0 || fieldLen == 0 {
		return 1
	}
	first := matched[0]
	last := matched[len(matched)-1]
	span := last - first + 1
	gaps := span - len(matched)
	if gaps < 0 {
		gaps = 0
	}
	d := 0.8*float64(gaps)/float64(span) + 0.2*float64(first)/float64(fieldLen)
	if d > 1 {
		return 1
	}
	return d
}

func (c column) originalSpans(doc int, hs []domain.Highlight) []domain.Highlight {
	for i := range hs {
		hs[i] = c.original(doc, hs[i])
	}
	return hs
}

// spans merges adjacent matched runes of value into inclusive byte ranges.
func spans(field, value string, matched []int) []domain.Highlight {
	var out []domain.Highlight
	for _, i := range matched {
		_, size := utf8.DecodeRuneInString(value[i:])
		end := i + size - 1
		if n := len(out); n > 0 && out[n-1].End+1 == i {
			out[n-1].End = end
			continue
		}
		out = append(out, domain.Highlight{Field: field, Start: i, End: end})
	}
	return out
}

type operator int

const (
	opFuzzy operator = iota
	opPhrase
	opPrefix
	opInclude
)

func parsePattern(pattern string) (operator, string, error) {
	switch {
	case strings.HasPrefix(pattern, `="`):
		rest := pattern[2:]
		if !strings.HasSuffix(rest, `"`) {
			return 0, "", fmt.Errorf("%w: unterminated phrase in %q", domain.ErrInvalidQuery, pattern)
		}
		return nonEmpty(opPhrase, strings.TrimSuffix(rest, `"`), pattern)
	case strings.HasPrefix(pattern, "^"):
		return nonEmpty(opPrefix, pattern[1:], pattern)
	case strings.HasPrefix(pattern, "'"):
		return nonEmpty(opInclude, pattern[1:], pattern)
	default:
		return nonEmpty(opFuzzy, pattern, pattern)
	}
}

func nonEmpty(op operator, term, pattern string) (operator, string, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return 0, "", fmt.Errorf("%w: empty term in %q", domain.ErrInvalidQuery, pattern)
	}
	return op, term, nil
}

func matchOperator(op operator, value, term string) (fieldMatch, bool) {
	switch op {
	case opPhrase:
		if value == term {
			return found(0, 0, len(term)), true
		}
		if i := strings.Index(value, term); i >= 0 {
			return found(phraseContainedDistance, i, len(term)), true
		}
	case opPrefix:
		if strings.HasPrefix(value, term) {
			return found(0, 0, len(term)), true
		}
		if i := wordPrefixIndex(value, term); i >= 0 {
			return found(laterWordPrefixDistance, i, len(term)), true
		}
	case opInclude:
		if value == term {
			return found(0, 0, len(term)), true
		}
		if i := strings.Index(value, term); i >= 0 {
			return found(inclusionDistance, i, len(term)), true
		}
	}
	return fieldMatch{}, false
}

func found(distance float64, start, length int) fieldMatch {
	return fieldMatch{
		ok:        true,
		distance:  distance,
		highlight: domain.Highlight{Start: start, End: start + length - 1},
	}
}

// wordPrefixIndex returns the offset of the first word after the first
// that starts with term, or -1.
func wordPrefixIndex(value, term string) int {
	offset := 0
	for {
		i := strings.Index(value[offset:], term)
		if i < 0 {
			return -1
		}
		at := offset + i
		if at > 0 {
			prev, _ := utf8.DecodeLastRuneInString(value[:at])
			if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
				return at
			}
		}
		offset = at + 1
		if offset >= len(value) {
			return -1
		}
	}
}
