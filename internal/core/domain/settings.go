package domain

import "time"

const unknownDescription = "Unknown"

// FieldWeights are the relative weights of the indexed fields.
// Only their ordering (title > searchText > url) is load-bearing.
type FieldWeights struct {
	Title      float64
	SearchText float64
	URL        float64
}

// VariantBoosts are the priority weights of the query variants.
type VariantBoosts struct {
	Exact  float64
	Fuzzy  float64
	Prefix float64
	Word   float64
}

// RecencyBonus is a flat bonus per recency bucket.
type RecencyBonus struct {
	Day   float64
	Week  float64
	Month float64
}

// For returns the bonus for an item last visited at t.
func (r RecencyBonus) For(now, t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	age := now.Sub(t)
	switch {
	case age < 24*time.Hour:
		return r.Day
	case age < 7*24*time.Hour:
		return r.Week
	case age < 30*24*time.Hour:
		return r.Month
	default:
		return 0
	}
}

// TypeBonus is a flat bonus per document type.
type TypeBonus struct {
	Tab        float64
	Bookmark   float64
	History    float64
	Suggestion float64
}

// For returns the bonus for a document type.
func (b TypeBonus) For(t DocumentType) float64 {
	switch t {
	case DocumentTypeTab:
		return b.Tab
	case DocumentTypeBookmark:
		return b.Bookmark
	case DocumentTypeHistory:
		return b.History
	case DocumentTypeSuggestion:
		return b.Suggestion
	default:
		return 0
	}
}

// VariantScoring holds the bonuses applied to each hit of one query variant.
type VariantScoring struct {
	ExactTitle         float64
	TitleContains      float64
	TitlePrefix        float64
	WordExact          float64
	WordPartial        float64
	URLContains        float64
	SearchTextContains float64
	DomainContains     float64
	Types              TypeBonus
	VisitCountFactor   float64
	Recency            RecencyBonus
}

// FinalScoring holds the bonuses of the query-level ranking pass.
type FinalScoring struct {
	ExactTitle       float64
	TitlePrefix      float64
	TitleContains    float64
	DomainContains   float64
	Types            TypeBonus
	VisitCountFactor float64
	Recency          RecencyBonus
	ShortTitleLength int
	ShortTitleBonus  float64
	LongTitleLength  int
	LongTitlePenalty float64
}

// HistorySettings bounds the history fetched into the index.
type HistorySettings struct {
	MaxResults int
	Window     time.Duration
	PerDomain  int
}

// DomainCaps bounds results per registrable domain in one result list.
type DomainCaps struct {
	History  int
	Bookmark int
}

// SuggestionSettings configures the remote suggestion source.
type SuggestionSettings struct {
	Enabled       bool
	Max           int
	Timeout       time.Duration
	Endpoint      string
	SearchURL     string
	RatePerSecond float64
}

// FreshnessSettings configures index rebuild scheduling.
type FreshnessSettings struct {
	HistoryDebounce time.Duration
	Interval        time.Duration
	TabPollInterval time.Duration
}

// BrowserSettings locates the browser data.
type BrowserSettings struct {
	// ProfileDir is the browser profile directory holding Bookmarks and History.
	// Empty uses the platform default.
	ProfileDir string

	// DevToolsURL is the remote debugging endpoint used to list open tabs.
	DevToolsURL string

	// WebTabsOnly restricts indexed tabs to http and https pages.
	WebTabsOnly bool
}

// EngineSettings holds every tunable of the search engine.
type EngineSettings struct {
	MinQueryLength int
	DefaultLimit   int
	FuzzyThreshold float64
	TieBand        float64
	Fields         FieldWeights
	Boosts         VariantBoosts
	Variant        VariantScoring
	Final          FinalScoring
	History        HistorySettings
	Caps           DomainCaps
	Suggestions    SuggestionSettings
	Freshness      FreshnessSettings
	SessionDelay   time.Duration
	Browser        BrowserSettings
}

// DefaultEngineSettings returns sensible defaults for the engine.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		MinQueryLength: 2,
		DefaultLimit:   20,
		FuzzyThreshold: 0.4,
		TieBand:        10,
		Fields: FieldWeights{
			Title:      0.6,
			SearchText: 0.3,
			URL:        0.1,
		},
		Boosts: VariantBoosts{
			Exact:  100,
			Fuzzy:  80,
			Prefix: 70,
			Word:   60,
		},
		Variant: VariantScoring{
			ExactTitle:         100,
			TitleContains:      50,
			TitlePrefix:        30,
			WordExact:          15,
			WordPartial:        5,
			URLContains:        20,
			SearchTextContains: 10,
			DomainContains:     25,
			Types:              TypeBonus{Tab: 20, Bookmark: 10, History: 0},
			VisitCountFactor:   5,
			Recency:            RecencyBonus{Day: 15, Week: 10, Month: 5},
		},
		Final: FinalScoring{
			ExactTitle:       1000,
			TitlePrefix:      500,
			TitleContains:    200,
			DomainContains:   100,
			Types:            TypeBonus{Tab: 60, Bookmark: 40, History: 20, Suggestion: 0},
			VisitCountFactor: 10,
			Recency:          RecencyBonus{Day: 30, Week: 20, Month: 10},
			ShortTitleLength: 30,
			ShortTitleBonus:  15,
			LongTitleLength:  100,
			LongTitlePenalty: 15,
		},
		History: HistorySettings{
			MaxResults: 1000,
			Window:     30 * 24 * time.Hour,
			PerDomain:  3,
		},
		Caps: DomainCaps{
			History:  2,
			Bookmark: 3,
		},
		Suggestions: SuggestionSettings{
			Enabled:       false,
			Max:           5,
			Timeout:       800 * time.Millisecond,
			Endpoint:      "https://suggestqueries.google.com/complete/search",
			SearchURL:     "https://www.google.com/search?q=",
			RatePerSecond: 5,
		},
		Freshness: FreshnessSettings{
			HistoryDebounce: 2 * time.Second,
			Interval:        5 * time.Minute,
			TabPollInterval: 3 * time.Second,
		},
		SessionDelay: 300 * time.Millisecond,
		Browser: BrowserSettings{
			DevToolsURL: "http://127.0.0.1:9222",
			WebTabsOnly: true,
		},
	}
}
