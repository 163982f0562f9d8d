package chrome

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
)

// DefaultTimeout bounds one DevTools request.
const DefaultTimeout = 2 * time.Second

// Ensure TabSource implements the interface.
var _ driven.TabSource = (*TabSource)(nil)

// devToolsTarget is one entry of the /json/list response.
type devToolsTarget struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	FaviconURL string `json:"faviconUrl"`
}

// TabSource lists open pages through the DevTools HTTP endpoint.
type TabSource struct {
	baseURL string
	client  *http.Client
}

// NewTabSource creates a tab source for the endpoint at baseURL,
// e.g. "http://127.0.0.1:9222".
func NewTabSource(baseURL string) *TabSource {
	return &TabSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// ListOpenTabs returns every page target. Extensions, workers and other
// non-page targets are skipped. CurrentWindow is ignored because the
// endpoint does not report windows.
func (s *TabSource) ListOpenTabs(ctx context.Context, q domain.TabQuery) ([]domain.TabRecord, error) {
	endpoint := s.baseURL + "/json/list"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDevToolsUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: endpoint}
	}

	var targets []devToolsTarget
	if err := json.NewDecoder(resp.Body).Decode(&targets); err != nil {
		return nil, fmt.Errorf("decoding tab list: %w", err)
	}

	tabs := make([]domain.TabRecord, 0, len(targets))
	for _, t := range targets {
		if t.Type != "page" {
			continue
		}
		if q.WebOnly && !isWebURL(t.URL) {
			continue
		}
		tabs = append(tabs, domain.TabRecord{
			ID:         t.ID,
			Title:      t.Title,
			URL:        t.URL,
			FaviconURL: t.FaviconURL,
		})
	}
	return tabs, nil
}

func isWebURL(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
