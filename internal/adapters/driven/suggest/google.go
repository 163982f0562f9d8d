package suggest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
)

// maxBody bounds the response read from the endpoint.
const maxBody = 64 << 10

// Ensure Client implements the interface.
var _ driven.SuggestionSource = (*Client)(nil)

// Options configures a suggestion client.
type Options struct {
	// Endpoint is the suggestion URL without query string.
	Endpoint string

	// Max caps the number of suggestions returned.
	Max int

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond float64

	// Timeout bounds each request. Callers usually pass a shorter context deadline.
	Timeout time.Duration
}

// Client fetches suggestions over HTTP.
type Client struct {
	endpoint string
	max      int
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a suggestion client.
func NewClient(opts Options) *Client {
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint: opts.Endpoint,
		max:      opts.Max,
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// FetchSuggestions returns completions for query. Every failure wraps
// domain.ErrSuggestionsUnavailable except context errors, which are
// returned as is.
func (c *Client) FetchSuggestions(ctx context.Context, query string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: throttled: %w", domain.ErrSuggestionsUnavailable, err)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: endpoint: %w", domain.ErrSuggestionsUnavailable, err)
	}
	params := u.Query()
	params.Set("client", "firefox")
	params.Set("q", query)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSuggestionsUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSuggestionsUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSuggestionsUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", domain.ErrSuggestionsUnavailable, err)
	}

	suggestions, err := parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSuggestionsUnavailable, err)
	}
	return c.trim(suggestions), nil
}

// parse decodes [query, [suggestion, ...], ...].
func parse(body []byte) ([]string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("unexpected response shape: %d elements", len(parts))
	}
	var suggestions []string
	if err := json.Unmarshal(parts[1], &suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}
	return suggestions, nil
}

func (c *Client) trim(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		out = append(out, s)
		if c.max > 0 && len(out) == c.max {
			break
		}
	}
	return out
}
