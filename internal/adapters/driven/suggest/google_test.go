package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

func server(t *testing.T, status int, body string) (*httptest.Server, *atomic.Value) {
	t.Helper()
	var lastQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery.Store(r.URL.Query())
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &lastQuery
}

func TestClient_FetchSuggestions(t *testing.T) {
	srv, last := server(t, http.StatusOK, `["golang",["golang tutorial"," golang generics ","","golang vs rust"],[],{"google:suggesttype":["QUERY"]}]`)
	c := NewClient(Options{Endpoint: srv.URL + "/complete/search", Max: 5})

	got, err := c.FetchSuggestions(context.Background(), "golang")

	require.NoError(t, err)
	assert.Equal(t, []string{"golang tutorial", "golang generics", "golang vs rust"}, got)

	params := last.Load().(url.Values)
	assert.Equal(t, "firefox", params.Get("client"))
	assert.Equal(t, "golang", params.Get("q"))
}

func TestClient_Max(t *testing.T) {
	srv, _ := server(t, http.StatusOK, `["go",["a","b","c"]]`)
	c := NewClient(Options{Endpoint: srv.URL, Max: 2})

	got, err := c.FetchSuggestions(context.Background(), "go")

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status", http.StatusServiceUnavailable, ``},
		{"not json", http.StatusOK, `<html>`},
		{"short", http.StatusOK, `["go"]`},
		{"wrong shape", http.StatusOK, `["go", "not a list"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := server(t, tt.status, tt.body)

			_, err := NewClient(Options{Endpoint: srv.URL}).FetchSuggestions(context.Background(), "go")

			assert.ErrorIs(t, err, domain.ErrSuggestionsUnavailable)
		})
	}
}

func TestClient_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(Options{Endpoint: srv.URL}).FetchSuggestions(ctx, "go")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Throttled(t *testing.T) {
	srv, _ := server(t, http.StatusOK, `["go",["a"]]`)
	c := NewClient(Options{Endpoint: srv.URL, RatePerSecond: 0.01})

	_, err := c.FetchSuggestions(context.Background(), "go")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.FetchSuggestions(ctx, "go")

	assert.ErrorIs(t, err, domain.ErrSuggestionsUnavailable)
}
