// Package metrics exposes Prometheus instrumentation for the search engine.
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

const namespace = "palette"

// Rebuild outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeCollapsed = "collapsed"
)

// Metrics holds the engine's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	rebuilds           *prometheus.CounterVec
	rebuildDuration    prometheus.Histogram
	indexDocuments     *prometheus.GaugeVec
	searchDuration     prometheus.Histogram
	searchResults      prometheus.Histogram
	variantFailures    prometheus.Counter
	suggestionFailures prometheus.Counter
	staleResults       prometheus.Counter
	httpDuration       *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_rebuilds_total",
			Help:      "Index rebuild requests by outcome",
		}, []string{"outcome"}),
		rebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_rebuild_duration_seconds",
			Help:      "Duration of successful index rebuilds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		indexDocuments: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_documents",
			Help:      "Documents in the current index generation by type",
		}, []string{"type"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of search requests that reached the index",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50},
		}),
		variantFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_variant_failures_total",
			Help:      "Query variants that failed and contributed no hits",
		}),
		suggestionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_failures_total",
			Help:      "Remote suggestion lookups that failed or timed out",
		}),
		staleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_stale_results_total",
			Help:      "Session results dropped because a newer query was submitted",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path", "status"}),
	}

	m.registry.MustRegister(
		m.rebuilds,
		m.rebuildDuration,
		m.indexDocuments,
		m.searchDuration,
		m.searchResults,
		m.variantFailures,
		m.suggestionFailures,
		m.staleResults,
		m.httpDuration,
	)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RebuildFinished records a rebuild outcome. Duration is observed for successes only.
func (m *Metrics) RebuildFinished(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.rebuilds.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.rebuildDuration.Observe(d.Seconds())
	}
}

// IndexSwapped records the document counts of a new generation.
func (m *Metrics) IndexSwapped(counts map[domain.DocumentType]int) {
	if m == nil {
		return
	}
	for _, t := range []domain.DocumentType{domain.DocumentTypeTab, domain.DocumentTypeBookmark, domain.DocumentTypeHistory} {
		m.indexDocuments.WithLabelValues(t.String()).Set(float64(counts[t]))
	}
}

// SearchFinished records one search that reached the index.
func (m *Metrics) SearchFinished(d time.Duration, results int) {
	if m == nil {
		return
	}
	m.searchDuration.Observe(d.Seconds())
	m.searchResults.Observe(float64(results))
}

// VariantFailed records a query variant that returned an error.
func (m *Metrics) VariantFailed() {
	if m == nil {
		return
	}
	m.variantFailures.Inc()
}

// SuggestionFailed records a failed suggestion lookup.
func (m *Metrics) SuggestionFailed() {
	if m == nil {
		return
	}
	m.suggestionFailures.Inc()
}

// StaleResultDropped records a session result discarded as stale.
func (m *Metrics) StaleResultDropped() {
	if m == nil {
		return
	}
	m.staleResults.Inc()
}
