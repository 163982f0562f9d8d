package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change palette settings",
	Long: `View and change the settings stored in config.toml.

With no subcommand, every setting is listed with its effective value.
Explicitly configured keys are marked with '*'. Changes apply the next
time palette starts.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Long: `Store a setting in config.toml.

Durations use Go syntax, e.g. 300ms or 168h. Examples:
  palette config set caps.history 4
  palette config set suggestions.enabled true
  palette config set browser.devtools_url http://127.0.0.1:9222`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var errSettingsNotConfigured = errors.New("settings service not configured")

func runConfigList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	configured := settingsService.Values()

	width := 0
	keys := settingsService.Keys()
	for _, k := range keys {
		width = max(width, len(k))
	}
	for _, k := range keys {
		value, err := settingsService.Value(k)
		if err != nil {
			return err
		}
		marker := ""
		if _, ok := configured[k]; ok {
			marker = " *"
		}
		fmt.Fprintf(out, "%-*s  %s%s\n", width, k, value, marker)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	value, err := settingsService.Value(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("setting %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	fmt.Fprintln(cmd.OutOrStdout(), settingsService.Path())
	return nil
}
