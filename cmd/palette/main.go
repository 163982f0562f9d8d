// Command palette searches the open tabs, bookmarks and recent history of a
// Chromium-based browser.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driven/chrome"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driven/index/fuzzy"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driven/suggest"
	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-palette/internal/core/services"
	"github.com/custodia-labs/sercha-palette/internal/logger"
	"github.com/custodia-labs/sercha-palette/internal/metrics"
)

// configDirEnv overrides the configuration directory.
const configDirEnv = "PALETTE_CONFIG_DIR"

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svcs, err := wire()
	if err != nil {
		fmt.Fprintf(os.Stderr, "palette: %v\n", err)
		os.Exit(1)
	}

	cli.SetServices(svcs)
	cli.SetVersion(version)
	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

// wire builds the engine from config.toml and returns the driving ports.
func wire() (cli.Services, error) {
	store, err := file.NewConfigStore(os.Getenv(configDirEnv))
	if err != nil {
		return cli.Services{}, fmt.Errorf("opening config: %w", err)
	}
	settings := services.LoadEngineSettings(store)

	// A missing profile is reported by the first build rather than here, so
	// tabs still work against a browser with no local profile.
	profile, err := chrome.ResolveProfileDir(settings.Browser.ProfileDir)
	if err != nil {
		logger.Warn("%v", err)
	}

	tabs := chrome.NewTabSource(settings.Browser.DevToolsURL)
	m := metrics.New()

	builder := services.NewIndexBuilder(
		services.Sources{
			Tabs:      tabs,
			Bookmarks: chrome.NewBookmarkSource(profile),
			History:   chrome.NewHistorySource(profile),
		},
		fuzzy.NewCompiler(fuzzy.Options{
			Fields:    settings.Fields,
			Threshold: settings.FuzzyThreshold,
		}),
		settings,
		m,
	)

	var suggestions driven.SuggestionSource
	if settings.Suggestions.Enabled {
		suggestions = suggest.NewClient(suggest.Options{
			Endpoint:      settings.Suggestions.Endpoint,
			Max:           settings.Suggestions.Max,
			RatePerSecond: settings.Suggestions.RatePerSecond,
			Timeout:       settings.Suggestions.Timeout,
		})
	}
	search := services.NewSearchService(settings, builder, suggestions, m)

	signals := chrome.NewSignalSource(
		profile,
		tabs,
		domain.TabQuery{WebOnly: settings.Browser.WebTabsOnly},
		settings.Freshness.TabPollInterval,
	)

	return cli.Services{
		Search:    search,
		Sessions:  services.NewSessionFactory(search, settings.SessionDelay, domain.SearchOptions{}, m),
		Settings:  services.NewSettingsService(store),
		Freshness: services.NewFreshnessController(builder, signals, settings.Freshness),
		Metrics:   m,
	}, nil
}
