package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.ScoredResult
	stats     domain.IndexStats
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.ScoredResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) BuildIndex(_ context.Context) error {
	return m.err
}

func (m *mockSearchService) Stats() domain.IndexStats {
	return m.stats
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	values map[string]string
}

func (m *mockSettingsService) Get() domain.EngineSettings {
	return domain.DefaultEngineSettings()
}

func (m *mockSettingsService) Set(_, _ string) error {
	return nil
}

func (m *mockSettingsService) Value(key string) (string, error) {
	return m.values[key], nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"caps.history"}
}

func (m *mockSettingsService) Values() map[string]string {
	return m.values
}

func (m *mockSettingsService) Path() string {
	return "/tmp/config.toml"
}
