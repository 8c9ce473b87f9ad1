package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
	Long: `View and change settings stored in config.toml.

Unset keys use their defaults.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Long: `Validates and stores one setting.

Example:
  rcingest config set ingest.batch_size 50000`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), appOptions{access: accessConfig})
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", a.ConfigPath)
	for _, key := range a.SettingsService.Keys() {
		value, err := a.SettingsService.Value(key)
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		fmt.Fprintf(out, "%s = %s\n", key, value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), appOptions{access: accessConfig})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.SettingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to save %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}
