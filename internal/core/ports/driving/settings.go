package driving

import "github.com/custodia-labs/sercha-palette/internal/core/domain"

// SettingsService exposes engine configuration.
type SettingsService interface {
	// Get returns the effective settings: defaults overlaid with configured values.
	Get() domain.EngineSettings

	// Set stores one configuration value by key, e.g. "caps.history".
	Set(key, value string) error

	// Value returns the effective value of one key, configured or default.
	Value(key string) (string, error)

	// Keys returns every configurable key, sorted.
	Keys() []string

	// Values returns every explicitly configured key and its value.
	Values() map[string]string

	// Path returns the configuration file path.
	Path() string
}
