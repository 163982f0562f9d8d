// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// linesPerResult is the height of one rendered result: title row and URL row.
const linesPerResult = 2

// ResultList displays ranked results in a navigable list.
type ResultList struct {
	results  []domain.ScoredResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
	now      func() time.Time
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 20,
		now:    time.Now,
	}
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	visible := max(r.height/linesPerResult, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.results))

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, r.renderResult(i, r.results[i]))
	}
	return strings.Join(rows, "\n")
}

func (r *ResultList) renderResult(index int, res domain.ScoredResult) string {
	doc := res.Document
	selected := index == r.selected

	indicator := "  "
	if selected {
		indicator = "❯ "
	}

	score := fmt.Sprintf("%6.1f", res.Score)
	badge := r.styles.Badge(doc.Type)
	titleWidth := max(r.width-lipgloss.Width(indicator)-lipgloss.Width(badge)-len(score)-2, 10)
	title := truncate(doc.Title, titleWidth)

	var titleLine string
	if selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, titleWidth, title, score))
		titleLine = badge + titleLine
	} else {
		titleLine = badge + r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, titleWidth, title)) +
			r.styles.Muted.Render(score)
	}

	detail := doc.URL
	if doc.IsHistory() {
		detail += r.visitSummary(doc)
	}
	detailLine := r.styles.Muted.Render(strings.Repeat(" ", 12) + truncate(detail, max(r.width-12, 10)))

	return titleLine + "\n" + detailLine
}

// visitSummary renders e.g. " · 4 visits · 3h ago".
func (r *ResultList) visitSummary(doc domain.IndexedDocument) string {
	var b strings.Builder
	if doc.VisitCount > 0 {
		fmt.Fprintf(&b, " · %d visits", doc.VisitCount)
	}
	if !doc.LastVisitTime.IsZero() {
		fmt.Fprintf(&b, " · %s ago", humanAge(r.now().Sub(doc.LastVisitTime)))
	}
	return b.String()
}

func humanAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "<1m"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// SetResults replaces the results. The selection stays on the same document
// when it is still present, otherwise it returns to the top.
func (r *ResultList) SetResults(results []domain.ScoredResult) {
	var keep string
	if cur := r.SelectedResult(); cur != nil {
		keep = cur.Document.ID
	}
	r.results = results
	r.selected = 0
	if keep == "" {
		return
	}
	for i := range results {
		if results[i].Document.ID == keep {
			r.selected = i
			return
		}
	}
}

// Results returns the current results.
func (r *ResultList) Results() []domain.ScoredResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out-of-range values are ignored.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.ScoredResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
