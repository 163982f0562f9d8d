package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

func TestNormalise_Tab(t *testing.T) {
	doc := Normalise(domain.TabRecord{
		ID:         "17",
		Title:      "Pull Requests",
		URL:        "https://www.github.com/org/repo/pulls",
		FaviconURL: "https://github.com/favicon.ico",
	})

	assert.Equal(t, "tab-17", doc.ID)
	assert.Equal(t, "Pull Requests", doc.Title)
	assert.Equal(t, domain.DocumentTypeTab, doc.Type)
	assert.Equal(t, "https://github.com/favicon.ico", doc.Favicon)
	assert.Equal(t, "pull requests github.com org repo pulls", doc.SearchText)
	assert.True(t, doc.LastVisitTime.IsZero())
}

func TestNormalise_Bookmark(t *testing.T) {
	doc := Normalise(domain.BookmarkRecord{ID: "42", Title: "  ", URL: "https://go.dev/doc/effective_go"})

	assert.Equal(t, "bookmark-42", doc.ID)
	assert.Equal(t, domain.UntitledTitle, doc.Title)
	assert.Equal(t, "untitled go.dev doc effective go", doc.SearchText)
}

func TestNormalise_History(t *testing.T) {
	visited := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

	doc := Normalise(domain.HistoryRecord{
		ID:            "998",
		Position:      3,
		Title:         "Weather",
		URL:           "https://weather.example.com/today",
		LastVisitTime: visited,
		VisitCount:    12,
	})

	assert.Equal(t, "history-3-998", doc.ID)
	assert.Equal(t, domain.DocumentTypeHistory, doc.Type)
	assert.Equal(t, visited, doc.LastVisitTime)
	assert.Equal(t, 12, doc.VisitCount)
}

// TestNormalise_UnparseableURL tests the raw concatenation fallback
func TestNormalise_UnparseableURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"no scheme", "not a url", "notes not a url"},
		{"bad escape", "http://%zz", "notes http://%zz"},
		{"empty", "", "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Normalise(domain.BookmarkRecord{ID: "1", Title: "Notes", URL: tt.url})
			assert.Equal(t, tt.want, doc.SearchText)
			assert.Equal(t, tt.url, doc.URL)
		})
	}
}

func TestNormalise_Idempotent(t *testing.T) {
	records := []domain.SourceRecord{
		domain.TabRecord{ID: "1", Title: "Inbox", URL: "https://mail.example.com/u/0"},
		domain.BookmarkRecord{ID: "2", URL: "ftp://files.example.com"},
		domain.HistoryRecord{ID: "3", Position: 0, Title: "News", URL: "https://news.example.com", VisitCount: 4},
	}

	for _, r := range records {
		assert.Equal(t, Normalise(r), Normalise(r))
	}
}
