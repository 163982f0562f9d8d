package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

var (
	searchLimit     int
	searchJSON      bool
	searchNoSuggest bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tabs, bookmarks and history",
	Long: `Builds the index from the browser once and prints the ranked results.

Open tabs rank above bookmarks, bookmarks above history, and remote search
suggestions (when enabled) fill any remaining slots.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 uses search.limit)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchNoSuggest, "no-suggest", false, "skip remote search suggestions")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	query := strings.Join(args, " ")
	ctx := cmd.Context()

	if err := searchService.BuildIndex(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	results, err := searchService.Search(ctx, query, domain.SearchOptions{
		Limit:         searchLimit,
		NoSuggestions: searchNoSuggest,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchTable(cmd, results)
	return nil
}

// resultJSON is the --json shape of one result.
type resultJSON struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Score         float64    `json:"score"`
	LastVisitTime *time.Time `json:"lastVisitTime,omitempty"`
	VisitCount    int        `json:"visitCount,omitempty"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.ScoredResult) error {
	out := make([]resultJSON, len(results))
	for i, r := range results {
		doc := r.Document
		out[i] = resultJSON{
			ID:         doc.ID,
			Type:       doc.Type.String(),
			Title:      doc.Title,
			URL:        doc.URL,
			Score:      r.Score,
			VisitCount: doc.VisitCount,
		}
		if !doc.LastVisitTime.IsZero() {
			t := doc.LastVisitTime.UTC()
			out[i].LastVisitTime = &t
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.ScoredResult) {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return
	}

	for i, r := range results {
		doc := r.Document
		fmt.Fprintf(out, "  [%d] %-12s %s (%.1f)\n", i+1, "["+doc.Type.String()+"]", doc.Title, r.Score)
		if doc.URL != "" {
			fmt.Fprintf(out, "      %s\n", doc.URL)
		}
	}
}
