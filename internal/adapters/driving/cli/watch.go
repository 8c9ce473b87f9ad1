package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rcingest/internal/adapters/driving/watcher"
)

var watchLimit int64

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest archives as they arrive",
	Long: `Watches the directory and ingests archives once they have stopped changing
for watch.settle_seconds. Archives already present are queued when the
watch starts; those listed in the ledger are skipped. Runs until interrupted.

The directory defaults to ingest.input_dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Int64VarP(&watchLimit, "limit", "n", 0, "maximum lines read per archive (0 = unlimited)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), appOptions{access: accessWrite, quiet: true})
	if err != nil {
		return err
	}
	defer a.Close()

	dir := a.Settings.Ingest.InputDir
	if len(args) == 1 {
		dir = args[0]
	}
	limit := a.Settings.Ingest.Limit
	if cmd.Flags().Changed("limit") {
		limit = watchLimit
	}

	w, err := watcher.New(a.Driver, watcher.Config{
		Dir:     dir,
		Pattern: a.Settings.Ingest.Pattern,
		Settle:  time.Duration(a.Settings.Watch.SettleSeconds) * time.Second,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s...\n", dir)
	return w.Run(cmd.Context())
}
