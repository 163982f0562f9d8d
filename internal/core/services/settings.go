package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// setting binds a config key to a field of domain.EngineSettings.
// field returns a *int, *float64, *bool, *string or *time.Duration.
type setting struct {
	key   string
	field func(*domain.EngineSettings) any
}

// settingsTable lists every configurable key.
var settingsTable = []setting{
	{"search.min_query_length", func(s *domain.EngineSettings) any { return &s.MinQueryLength }},
	{"search.limit", func(s *domain.EngineSettings) any { return &s.DefaultLimit }},
	{"search.fuzzy_threshold", func(s *domain.EngineSettings) any { return &s.FuzzyThreshold }},
	{"search.tie_band", func(s *domain.EngineSettings) any { return &s.TieBand }},

	{"weights.title", func(s *domain.EngineSettings) any { return &s.Fields.Title }},
	{"weights.search_text", func(s *domain.EngineSettings) any { return &s.Fields.SearchText }},
	{"weights.url", func(s *domain.EngineSettings) any { return &s.Fields.URL }},

	{"boosts.exact", func(s *domain.EngineSettings) any { return &s.Boosts.Exact }},
	{"boosts.fuzzy", func(s *domain.EngineSettings) any { return &s.Boosts.Fuzzy }},
	{"boosts.prefix", func(s *domain.EngineSettings) any { return &s.Boosts.Prefix }},
	{"boosts.word", func(s *domain.EngineSettings) any { return &s.Boosts.Word }},

	{"ranking.exact_title_bonus", func(s *domain.EngineSettings) any { return &s.Final.ExactTitle }},
	{"ranking.title_prefix_bonus", func(s *domain.EngineSettings) any { return &s.Final.TitlePrefix }},
	{"ranking.title_contains_bonus", func(s *domain.EngineSettings) any { return &s.Final.TitleContains }},
	{"ranking.domain_bonus", func(s *domain.EngineSettings) any { return &s.Final.DomainContains }},
	{"ranking.tab_bonus", func(s *domain.EngineSettings) any { return &s.Final.Types.Tab }},
	{"ranking.bookmark_bonus", func(s *domain.EngineSettings) any { return &s.Final.Types.Bookmark }},
	{"ranking.history_bonus", func(s *domain.EngineSettings) any { return &s.Final.Types.History }},

	{"history.max_results", func(s *domain.EngineSettings) any { return &s.History.MaxResults }},
	{"history.window", func(s *domain.EngineSettings) any { return &s.History.Window }},
	{"history.per_domain", func(s *domain.EngineSettings) any { return &s.History.PerDomain }},

	{"caps.history", func(s *domain.EngineSettings) any { return &s.Caps.History }},
	{"caps.bookmark", func(s *domain.EngineSettings) any { return &s.Caps.Bookmark }},

	{"suggestions.enabled", func(s *domain.EngineSettings) any { return &s.Suggestions.Enabled }},
	{"suggestions.max", func(s *domain.EngineSettings) any { return &s.Suggestions.Max }},
	{"suggestions.timeout", func(s *domain.EngineSettings) any { return &s.Suggestions.Timeout }},
	{"suggestions.endpoint", func(s *domain.EngineSettings) any { return &s.Suggestions.Endpoint }},
	{"suggestions.search_url", func(s *domain.EngineSettings) any { return &s.Suggestions.SearchURL }},
	{"suggestions.rate", func(s *domain.EngineSettings) any { return &s.Suggestions.RatePerSecond }},

	{"freshness.history_debounce", func(s *domain.EngineSettings) any { return &s.Freshness.HistoryDebounce }},
	{"freshness.interval", func(s *domain.EngineSettings) any { return &s.Freshness.Interval }},
	{"freshness.tab_poll", func(s *domain.EngineSettings) any { return &s.Freshness.TabPollInterval }},

	{"session.debounce", func(s *domain.EngineSettings) any { return &s.SessionDelay }},

	{"browser.profile_dir", func(s *domain.EngineSettings) any { return &s.Browser.ProfileDir }},
	{"browser.devtools_url", func(s *domain.EngineSettings) any { return &s.Browser.DevToolsURL }},
	{"browser.web_tabs_only", func(s *domain.EngineSettings) any { return &s.Browser.WebTabsOnly }},
}

func lookupSetting(key string) (setting, bool) {
	for _, s := range settingsTable {
		if s.key == key {
			return s, true
		}
	}
	return setting{}, false
}

// SettingKeys returns every configurable key, sorted.
func SettingKeys() []string {
	keys := make([]string, len(settingsTable))
	for i, s := range settingsTable {
		keys[i] = s.key
	}
	sort.Strings(keys)
	return keys
}

// LoadEngineSettings overlays every configured key on the defaults.
// Keys with a value of the wrong type keep their default.
func LoadEngineSettings(store driven.ConfigStore) domain.EngineSettings {
	settings := domain.DefaultEngineSettings()
	if store == nil {
		return settings
	}
	for _, s := range settingsTable {
		raw, ok := store.Get(s.key)
		if !ok {
			continue
		}
		switch p := s.field(&settings).(type) {
		case *int:
			if isInteger(raw) {
				*p = store.GetInt(s.key)
			}
		case *float64:
			if isNumber(raw) {
				*p = store.GetFloat(s.key)
			}
		case *bool:
			if _, isBool := raw.(bool); isBool {
				*p = store.GetBool(s.key)
			}
		case *time.Duration:
			if d := store.GetDuration(s.key); d > 0 {
				*p = d
			}
		case *string:
			if _, isString := raw.(string); isString {
				*p = store.GetString(s.key)
			}
		}
	}
	return settings
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int64:
		return true
	default:
		return false
	}
}

func isNumber(v any) bool {
	if _, ok := v.(float64); ok {
		return true
	}
	return isInteger(v)
}

// SettingsService manages engine settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the effective settings.
func (s *SettingsService) Get() domain.EngineSettings {
	return LoadEngineSettings(s.configStore)
}

// Set parses value for key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	st, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var scratch domain.EngineSettings
	var stored any
	switch st.field(&scratch).(type) {
	case *int:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case *float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	case *bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	case *time.Duration:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %s must be a positive duration such as 2s", domain.ErrInvalidInput, key)
		}
		stored = d.String()
	default:
		stored = value
	}

	if key == "search.fuzzy_threshold" && stored.(float64) > 1 {
		return fmt.Errorf("%w: %s must be between 0 and 1", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every configurable key, sorted.
func (s *SettingsService) Keys() []string {
	return SettingKeys()
}

// Values returns every configured key that is a known setting, formatted.
func (s *SettingsService) Values() map[string]string {
	settings := s.Get()
	out := make(map[string]string)
	for _, key := range s.configStore.Keys() {
		st, ok := lookupSetting(key)
		if !ok {
			continue
		}
		out[key] = formatSetting(st.field(&settings))
	}
	return out
}

// Value returns the effective value of one key, configured or default.
func (s *SettingsService) Value(key string) (string, error) {
	st, ok := lookupSetting(key)
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
	settings := s.Get()
	return formatSetting(st.field(&settings)), nil
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func formatSetting(p any) string {
	switch v := p.(type) {
	case *int:
		return strconv.Itoa(*v)
	case *float64:
		return strconv.FormatFloat(*v, 'g', -1, 64)
	case *bool:
		return strconv.FormatBool(*v)
	case *time.Duration:
		return v.String()
	case *string:
		return *v
	default:
		return ""
	}
}
