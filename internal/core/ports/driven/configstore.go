package driven

import "time"

// ConfigStore holds user settings keyed in dot notation ("caps.history").
// Typed getters return the zero value when a key is absent or has the
// wrong type; callers layer defaults on top.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int

	// GetFloat widens integers.
	GetFloat(key string) float64
	GetBool(key string) bool

	// GetDuration parses Go duration strings such as "300ms".
	GetDuration(key string) time.Duration

	// Keys lists the keys that are explicitly set, sorted.
	Keys() []string

	// Set stores and persists a value.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is where the settings live, for display.
	Path() string
}
