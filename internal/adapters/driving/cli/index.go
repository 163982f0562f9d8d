package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

var indexJSON bool

var countOrder = []domain.DocumentType{domain.DocumentTypeTab, domain.DocumentTypeBookmark, domain.DocumentTypeHistory}

var countLabels = map[domain.DocumentType]string{
	domain.DocumentTypeTab:      "tabs",
	domain.DocumentTypeBookmark: "bookmarks",
	domain.DocumentTypeHistory:  "history",
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect the search index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the index from the browser and report what it holds",
	RunE:  runIndexBuild,
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show detailed statistics of a freshly built index",
	RunE:  runIndexStats,
}

func init() {
	indexBuildCmd.Flags().BoolVar(&indexJSON, "json", false, "output statistics as JSON")
	indexStatsCmd.Flags().BoolVar(&indexJSON, "json", false, "output statistics as JSON")
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexStatsCmd)
	rootCmd.AddCommand(indexCmd)
}

// buildAndStat builds the index once and returns its statistics.
func buildAndStat(cmd *cobra.Command) (domain.IndexStats, error) {
	if searchService == nil {
		return domain.IndexStats{}, errors.New("search service not configured")
	}
	if err := searchService.BuildIndex(cmd.Context()); err != nil {
		return domain.IndexStats{}, fmt.Errorf("building index: %w", err)
	}
	return searchService.Stats(), nil
}

func printStatsJSON(cmd *cobra.Command, stats domain.IndexStats) error {
	data, err := json.MarshalIndent(statsJSON(stats), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	stats, err := buildAndStat(cmd)
	if err != nil {
		return err
	}
	if indexJSON {
		return printStatsJSON(cmd, stats)
	}

	fmt.Fprintf(out, "Indexed %s in %s\n", stats.IndexSize, stats.BuildDuration.Round(time.Millisecond))
	for _, t := range countOrder {
		fmt.Fprintf(out, "  %-10s %d\n", countLabels[t]+":", stats.Counts[t])
	}
	if stats.LastError != "" {
		fmt.Fprintf(out, "Last error: %s\n", stats.LastError)
	}
	return nil
}

func runIndexStats(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	stats, err := buildAndStat(cmd)
	if err != nil {
		return err
	}
	if indexJSON {
		return printStatsJSON(cmd, stats)
	}

	fmt.Fprintln(out, "Index")
	fmt.Fprintln(out, "=====")
	fmt.Fprintf(out, "  Initialised:     %t\n", stats.IsInitialised)
	fmt.Fprintf(out, "  Size:            %s\n", stats.IndexSize)
	for _, t := range countOrder {
		fmt.Fprintf(out, "  %-16s %d\n", countLabels[t]+":", stats.Counts[t])
	}
	fmt.Fprintf(out, "  Generation:      %d\n", stats.Generation)
	if !stats.BuiltAt.IsZero() {
		fmt.Fprintf(out, "  Built at:        %s\n", stats.BuiltAt.Format(time.RFC3339))
	}
	fmt.Fprintf(out, "  Build time:      %s\n", stats.BuildDuration.Round(time.Millisecond))
	fmt.Fprintf(out, "  Collapsed:       %d\n", stats.RebuildsCollapsed)
	if stats.LastError != "" {
		fmt.Fprintf(out, "  Last error:      %s\n", stats.LastError)
	}
	return nil
}

func statsJSON(s domain.IndexStats) map[string]any {
	counts := make(map[string]int, len(s.Counts))
	for t, n := range s.Counts {
		counts[t.String()] = n
	}
	out := map[string]any{
		"initialised":     s.IsInitialised,
		"size":            s.IndexSize,
		"documents":       s.Documents,
		"counts":          counts,
		"generation":      s.Generation,
		"buildDurationMs": s.BuildDuration.Milliseconds(),
	}
	if !s.BuiltAt.IsZero() {
		out["builtAt"] = s.BuiltAt.UTC().Format(time.RFC3339)
	}
	if s.LastError != "" {
		out["lastError"] = s.LastError
	}
	return out
}
