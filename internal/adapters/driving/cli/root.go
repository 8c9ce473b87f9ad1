// Package cli provides the rcingest command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rcingest/internal/logger"
)

// version is reported by the version command and set by Execute.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
	storePath string
)

var rootCmd = &cobra.Command{
	Use:   "rcingest",
	Short: "Load Reddit comment archives into SQLite",
	Long: `rcingest streams zstd-compressed Reddit comment dumps (RC_*.zst) into a
single SQLite file, normalising each comment into one row of the comments table.

Settings are read from config.toml in the config directory and can be changed
with "rcingest config set".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug and info logs")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.rcingest)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "database file (overrides store.path)")
}

// Execute runs the command line with ctx. v is the build version.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}
