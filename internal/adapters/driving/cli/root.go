// Package cli provides the palette command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-palette/internal/logger"
	"github.com/custodia-labs/sercha-palette/internal/metrics"
)

// version is overridden at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var verbose bool

// Services wired in by the composition root.
var (
	searchService   driving.SearchService
	sessionFactory  driving.SessionFactory
	settingsService driving.SettingsService
	freshness       driving.FreshnessController
	engineMetrics   *metrics.Metrics
)

// Services holds the driving ports the commands use.
type Services struct {
	Search    driving.SearchService
	Sessions  driving.SessionFactory
	Settings  driving.SettingsService
	Freshness driving.FreshnessController
	Metrics   *metrics.Metrics
}

// SetServices installs the services behind every command.
func SetServices(s Services) {
	searchService = s.Search
	sessionFactory = s.Sessions
	settingsService = s.Settings
	freshness = s.Freshness
	engineMetrics = s.Metrics
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "palette",
	Short: "Fuzzy search across browser tabs, bookmarks and history",
	Long: `Palette indexes the open tabs, bookmarks and recent history of a
Chromium-based browser and ranks them against what you type.

Open tabs are read from the browser's remote debugging endpoint, so start
the browser with --remote-debugging-port=9222 to include them.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print index and ranking diagnostics to stderr")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// startFreshness keeps the index current until ctx ends. The returned func
// stops the controller and waits for a running rebuild.
func startFreshness(ctx context.Context) (stop func()) {
	if freshness == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := freshness.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("index refresh stopped: %v", err)
		}
	}()
	return func() {
		cancel()
		if err := freshness.Stop(); err != nil {
			logger.Error("stopping index refresh: %v", err)
		}
		<-done
	}
}
