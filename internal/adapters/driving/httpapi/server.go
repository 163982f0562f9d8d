// Package httpapi serves the palette over HTTP: a JSON search endpoint,
// index stats, the MCP streamable transport, Prometheus metrics and a
// health check, all on one chi router.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-palette/internal/logger"
	"github.com/custodia-labs/sercha-palette/internal/metrics"
)

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("httpapi: search service is required")

const shutdownTimeout = 5 * time.Second

// Config holds the server's collaborators.
type Config struct {
	// Search is required.
	Search driving.SearchService

	// MCP is mounted at /mcp when set.
	MCP http.Handler

	// Metrics is served at /metrics and instruments every route when set.
	Metrics *metrics.Metrics
}

// Server is the HTTP front end.
type Server struct {
	search driving.SearchService
	router chi.Router
	log    *logger.Logger
}

// NewServer builds the router.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Search == nil {
		return nil, ErrMissingSearchService
	}
	s := &Server{
		search: cfg.Search,
		log:    logger.Named("http"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)
	r.Use(cfg.Metrics.Middleware())

	r.Get("/healthz", s.handleHealth)
	r.Get("/search", s.handleSearch)
	r.Get("/stats", s.handleStats)
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	s.router = r
	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLog emits one debug line per request.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

type healthResponse struct {
	Status      string `json:"status"`
	Initialised bool   `json:"initialised"`
	Documents   int    `json:"documents"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	stats := s.search.Stats()
	status := "ok"
	if !stats.IsInitialised {
		status = "starting"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      status,
		Initialised: stats.IsInitialised,
		Documents:   stats.Documents,
	})
}

type resultResponse struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Score         float64    `json:"score"`
	LastVisitTime *time.Time `json:"last_visit_time,omitempty"`
	VisitCount    int        `json:"visit_count,omitempty"`
}

type searchResponse struct {
	Query   string           `json:"query"`
	Results []resultResponse `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := domain.SearchOptions{}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		opts.Limit = n
	}
	if raw := q.Get("no_suggest"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no_suggest must be a boolean"})
			return
		}
		opts.NoSuggestions = v
	}

	results, err := s.search.Search(r.Context(), q.Get("q"), opts)
	if err != nil {
		s.log.Warn("search for %q failed: %v", q.Get("q"), err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	resp := searchResponse{Query: q.Get("q"), Results: make([]resultResponse, len(results))}
	for i, res := range results {
		out := resultResponse{
			ID:         res.Document.ID,
			Type:       res.Document.Type.String(),
			Title:      res.Document.Title,
			URL:        res.Document.URL,
			Score:      res.Score,
			VisitCount: res.Document.VisitCount,
		}
		if !res.Document.LastVisitTime.IsZero() {
			t := res.Document.LastVisitTime.UTC()
			out.LastVisitTime = &t
		}
		resp.Results[i] = out
	}
	writeJSON(w, http.StatusOK, resp)
}

type statsResponse struct {
	Initialised       bool           `json:"initialised"`
	Size              string         `json:"size"`
	Documents         int            `json:"documents"`
	Counts            map[string]int `json:"counts"`
	Generation        uint64         `json:"generation"`
	RebuildsCollapsed uint64         `json:"rebuilds_collapsed"`
	LastError         string         `json:"last_error,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats := s.search.Stats()
	resp := statsResponse{
		Initialised:       stats.IsInitialised,
		Size:              stats.IndexSize,
		Documents:         stats.Documents,
		Counts:            make(map[string]int, len(stats.Counts)),
		Generation:        stats.Generation,
		RebuildsCollapsed: stats.RebuildsCollapsed,
		LastError:         stats.LastError,
	}
	for t, n := range stats.Counts {
		resp.Counts[t.String()] = n
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
