package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

var (
	ingestLimit    int64
	ingestClear    bool
	ingestNoBackup bool
	ingestQueue    int
	ingestQuiet    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [archive...]",
	Short: "Load comment archives into the store",
	Long: `Reads zstd-compressed comment archives and inserts every valid comment into
the comments table.

With no arguments, every archive in ingest.input_dir matching ingest.pattern
that is not yet listed in the ledger is ingested, and each successful archive
is added to the ledger. Archives named on the command line are ingested
unconditionally and the ledger is left untouched.

--clear drops the existing tables first. Unless --no-backup is given (or
store.backup is false) a non-empty database is copied to store.backup_dir
before it is cleared.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().Int64VarP(&ingestLimit, "limit", "n", 0, "maximum lines read per archive (0 = unlimited)")
	ingestCmd.Flags().BoolVar(&ingestClear, "clear", false, "drop existing tables before loading")
	ingestCmd.Flags().BoolVar(&ingestNoBackup, "no-backup", false, "skip the backup copy made by --clear")
	ingestCmd.Flags().IntVar(&ingestQueue, "queue", domain.DefaultQueueSize, "pipeline queue size (0 = read and load on one goroutine)")
	ingestCmd.Flags().BoolVarP(&ingestQuiet, "quiet", "q", false, "do not draw progress")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	opts := appOptions{
		access:   accessWrite,
		clear:    ingestClear,
		noBackup: ingestNoBackup,
		quiet:    ingestQuiet,
		out:      cmd.OutOrStdout(),
	}
	if cmd.Flags().Changed("queue") {
		opts.queueSize = &ingestQueue
	}

	a, err := newApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.BackupPath != "" {
		cmd.Printf("Backed up store to %s\n", a.BackupPath)
	}

	limit := a.Settings.Ingest.Limit
	if cmd.Flags().Changed("limit") {
		limit = ingestLimit
	}

	if len(args) == 0 {
		summaries, err := a.Driver.Run(cmd.Context(), a.Settings.Ingest.InputDir, limit)
		printTotals(cmd, summaries)
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		return nil
	}

	var (
		summaries []domain.IngestSummary
		errs      []error
	)
	for _, path := range args {
		summary, err := a.Ingest.Ingest(cmd.Context(), path, limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			if errors.Is(err, domain.ErrWriteRejected) || errors.Is(err, domain.ErrIngestInProgress) ||
				cmd.Context().Err() != nil {
				break
			}
			continue
		}
		summaries = append(summaries, *summary)
	}
	printTotals(cmd, summaries)
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return nil
}

// printTotals reports what a multi-archive run loaded.
func printTotals(cmd *cobra.Command, summaries []domain.IngestSummary) {
	var rows, rejected, invalid int64
	for _, s := range summaries {
		rows += s.Rows
		rejected += s.Rejected
		invalid += s.Invalid
	}
	cmd.Printf("Ingested %d archive(s): %d rows, %d rejected, %d unparsable lines.\n",
		len(summaries), rows, rejected, invalid)
}
