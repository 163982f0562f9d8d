package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/tui"
)

// isTerminal reports whether stdin is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// errNotTerminal is returned when tui is started without a terminal.
var errNotTerminal = errors.New("tui requires an interactive terminal")

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive palette",
	Long: `Open the interactive palette in the terminal.

Results update as you type and the index refreshes in the background while
the palette is open. Choosing a result prints its URL and exits, so the
palette composes with other tools:

  xdg-open "$(palette tui)"

Controls:
  ↑/↓, ctrl+p/ctrl+n - Move selection
  Enter              - Print the selected URL and exit
  Esc                - Clear the query, or exit when empty
  ctrl+s             - Settings
  ctrl+c             - Exit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in TUI: %v\n%s", r, debug.Stack())
		}
	}()

	if !isTerminal() {
		return errNotTerminal
	}

	app, err := tui.NewApp(&tui.Ports{
		Sessions: sessionFactory,
		Search:   searchService,
		Settings: settingsService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	stop := startFreshness(cmd.Context())
	defer stop()

	chosen, err := app.WithContext(cmd.Context()).Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if chosen != nil && chosen.Document.URL != "" {
		fmt.Fprintln(cmd.OutOrStdout(), chosen.Document.URL)
	}
	return nil
}
