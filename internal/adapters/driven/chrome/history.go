package chrome

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
)

// webkitEpochOffset is the number of microseconds between
// 1601-01-01 and 1970-01-01, both UTC.
const webkitEpochOffset = 11644473600 * 1_000_000

// Ensure HistorySource implements the interface.
var _ driven.HistorySource = (*HistorySource)(nil)

const historyQuery = `
	SELECT id, url, COALESCE(title, ''), visit_count, last_visit_time
	FROM urls
	WHERE hidden = 0
	  AND last_visit_time >= ?
	  AND (? = '' OR url LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\')
	ORDER BY last_visit_time DESC, id DESC
	LIMIT ?`

// HistorySource queries the profile's History database.
type HistorySource struct {
	path string
}

// NewHistorySource creates a history source for the profile directory.
func NewHistorySource(profileDir string) *HistorySource {
	return &HistorySource{path: filepath.Join(profileDir, HistoryFile)}
}

// SearchHistory returns visited pages, most recent first.
func (s *HistorySource) SearchHistory(ctx context.Context, q domain.HistoryQuery) ([]domain.HistoryRecord, error) {
	snapshot, cleanup, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite", snapshot+"?_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer db.Close()

	limit := q.MaxResults
	if limit <= 0 {
		limit = -1
	}
	var since int64
	if !q.StartTime.IsZero() {
		since = toWebKit(q.StartTime)
	}
	pattern := "%" + escapeLike(q.Text) + "%"

	rows, err := db.QueryContext(ctx, historyQuery, since, q.Text, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoryRecord
	for rows.Next() {
		var (
			id         int64
			url, title string
			visits     int
			lastVisit  int64
		)
		if err := rows.Scan(&id, &url, &title, &visits, &lastVisit); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		out = append(out, domain.HistoryRecord{
			ID:            strconv.FormatInt(id, 10),
			Title:         title,
			URL:           url,
			LastVisitTime: fromWebKit(lastVisit),
			VisitCount:    visits,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return out, nil
}

// snapshot copies the History file to a temporary file, since the browser
// holds a lock on the original while running.
func (s *HistorySource) snapshot() (string, func(), error) {
	src, err := os.Open(s.path)
	if err != nil {
		return "", nil, fmt.Errorf("opening history file: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "palette-history-*.db")
	if err != nil {
		return "", nil, fmt.Errorf("creating history snapshot: %w", err)
	}
	cleanup := func() { _ = os.Remove(dst.Name()) }

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		cleanup()
		return "", nil, fmt.Errorf("copying history file: %w", err)
	}
	if err := dst.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing history snapshot: %w", err)
	}
	return dst.Name(), cleanup, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// fromWebKit converts microseconds since 1601-01-01 UTC. Zero means never.
func fromWebKit(us int64) time.Time {
	if us <= 0 {
		return time.Time{}
	}
	return time.UnixMicro(us - webkitEpochOffset)
}

func toWebKit(t time.Time) int64 {
	return t.UnixMicro() + webkitEpochOffset
}
