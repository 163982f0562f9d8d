package chrome

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

type historyRow struct {
	id     int64
	url    string
	title  any
	visits int
	last   time.Time
	hidden bool
}

// writeHistory creates a History database with the columns the source reads.
func writeHistory(t *testing.T, dir string, rows ...historyRow) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(dir, HistoryFile))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE urls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url LONGVARCHAR,
		title LONGVARCHAR,
		visit_count INTEGER DEFAULT 0 NOT NULL,
		typed_count INTEGER DEFAULT 0 NOT NULL,
		last_visit_time INTEGER NOT NULL,
		hidden INTEGER DEFAULT 0 NOT NULL
	)`)
	require.NoError(t, err)

	for _, r := range rows {
		var last int64
		if !r.last.IsZero() {
			last = toWebKit(r.last)
		}
		hidden := 0
		if r.hidden {
			hidden = 1
		}
		_, err := db.Exec(`INSERT INTO urls (id, url, title, visit_count, last_visit_time, hidden) VALUES (?, ?, ?, ?, ?, ?)`,
			r.id, r.url, r.title, r.visits, last, hidden)
		require.NoError(t, err)
	}
}

func historyIDs(records []domain.HistoryRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestHistorySource_SearchHistory(t *testing.T) {
	now := time.Now()
	dir := t.TempDir()
	writeHistory(t, dir,
		historyRow{id: 1, url: "https://old.example.com", title: "Old", visits: 1, last: now.Add(-60 * 24 * time.Hour)},
		historyRow{id: 2, url: "https://github.com", title: "GitHub", visits: 12, last: now.Add(-time.Hour)},
		historyRow{id: 3, url: "https://go.dev/doc", title: nil, visits: 2, last: now.Add(-2 * time.Hour)},
		historyRow{id: 4, url: "https://hidden.example.com", title: "Hidden", visits: 1, last: now, hidden: true},
		historyRow{id: 5, url: "https://news.example.com", title: "News", visits: 3, last: now.Add(-10 * time.Minute)},
	)
	src := NewHistorySource(dir)

	t.Run("window and order", func(t *testing.T) {
		records, err := src.SearchHistory(context.Background(), domain.HistoryQuery{
			StartTime: now.Add(-30 * 24 * time.Hour),
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"5", "2", "3"}, historyIDs(records))
		assert.Equal(t, "GitHub", records[1].Title)
		assert.Equal(t, 12, records[1].VisitCount)
		assert.WithinDuration(t, now.Add(-time.Hour), records[1].LastVisitTime, time.Millisecond)
		assert.Equal(t, "", records[2].Title)
	})

	t.Run("max results", func(t *testing.T) {
		records, err := src.SearchHistory(context.Background(), domain.HistoryQuery{MaxResults: 2})

		require.NoError(t, err)
		assert.Equal(t, []string{"5", "2"}, historyIDs(records))
	})

	t.Run("text filter", func(t *testing.T) {
		records, err := src.SearchHistory(context.Background(), domain.HistoryQuery{Text: "go"})

		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, historyIDs(records))
	})

	t.Run("text is not a pattern", func(t *testing.T) {
		records, err := src.SearchHistory(context.Background(), domain.HistoryQuery{Text: "%"})

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestHistorySource_LeavesOriginalUntouched(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir, historyRow{id: 1, url: "https://a.example.com", title: "A", last: time.Now()})
	src := NewHistorySource(dir)

	for i := 0; i < 2; i++ {
		records, err := src.SearchHistory(context.Background(), domain.HistoryQuery{})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	}
}

func TestHistorySource_MissingFile(t *testing.T) {
	_, err := NewHistorySource(t.TempDir()).SearchHistory(context.Background(), domain.HistoryQuery{})

	assert.ErrorContains(t, err, "opening history file")
}

func TestWebKitTime(t *testing.T) {
	assert.True(t, fromWebKit(0).IsZero())
	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), fromWebKit(webkitEpochOffset).UTC())

	ts := time.Date(2024, 3, 1, 12, 30, 0, 123456000, time.UTC)
	assert.True(t, ts.Equal(fromWebKit(toWebKit(ts))))
}
