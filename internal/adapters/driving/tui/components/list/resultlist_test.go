package list

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleResults() []domain.ScoredResult {
	return []domain.ScoredResult{
		{Document: domain.IndexedDocument{
			ID: "tab-1", Type: domain.DocumentTypeTab, Title: "GitHub", URL: "https://github.com/",
		}, Score: 812.5},
		{Document: domain.IndexedDocument{
			ID: "bookmark-4", Type: domain.DocumentTypeBookmark, Title: "Go Docs", URL: "https://go.dev/doc/",
		}, Score: 640},
		{Document: domain.IndexedDocument{
			ID: "history-0-9", Type: domain.DocumentTypeHistory, Title: "Go Blog", URL: "https://go.dev/blog/",
			VisitCount: 4, LastVisitTime: fixedNow.Add(-3 * time.Hour),
		}, Score: 410},
	}
}

func newList() *ResultList {
	l := NewResultList(nil)
	l.now = func() time.Time { return fixedNow }
	return l
}

func TestResultList_Empty(t *testing.T) {
	l := newList()

	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedResult())
	assert.Equal(t, "No results", stripANSI(l.View()))
}

func TestResultList_Navigation(t *testing.T) {
	l := newList()
	l.SetResults(sampleResults())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	l.SetSelected(7)
	assert.Equal(t, 2, l.Selected())

	l.SetSelected(1)
	require.NotNil(t, l.SelectedResult())
	assert.Equal(t, "bookmark-4", l.SelectedResult().Document.ID)
}

func TestResultList_SetResults_KeepsSelectedDocument(t *testing.T) {
	l := newList()
	l.SetResults(sampleResults())
	l.SetSelected(1)

	reordered := sampleResults()
	reordered[0], reordered[1] = reordered[1], reordered[0]
	l.SetResults(reordered)
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, "bookmark-4", l.SelectedResult().Document.ID)

	l.SetResults(sampleResults()[2:])
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 1, l.Count())
}

func TestResultList_View(t *testing.T) {
	l := newList()
	l.SetDimensions(100, 20)
	l.SetResults(sampleResults())

	out := stripANSI(l.View())

	assert.Contains(t, out, "[tab]")
	assert.Contains(t, out, "[bookmark]")
	assert.Contains(t, out, "[history]")
	assert.Contains(t, out, "❯ GitHub")
	assert.Contains(t, out, "812.5")
	assert.Contains(t, out, "https://go.dev/blog/ · 4 visits · 3h ago")
}

func TestResultList_View_ScrollsToSelection(t *testing.T) {
	l := newList()
	l.SetDimensions(100, 2)
	l.SetResults(sampleResults())
	l.SetSelected(2)

	out := stripANSI(l.View())

	assert.Contains(t, out, "Go Blog")
	assert.NotContains(t, out, "GitHub")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a", truncate("abc", 1))
}

func TestHumanAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{10 * time.Second, "<1m"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{50 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanAge(tt.d))
	}
}

// stripANSI removes terminal escape sequences so assertions see plain text.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
