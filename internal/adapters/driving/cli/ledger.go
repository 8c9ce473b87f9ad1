package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the processed-archive ledger",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archives already ingested",
	Args:  cobra.NoArgs,
	RunE:  runLedgerList,
}

func init() {
	ledgerCmd.AddCommand(ledgerListCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func runLedgerList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), appOptions{access: accessLedger})
	if err != nil {
		return err
	}
	defer a.Close()

	names, err := a.Driver.Processed()
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}
	if len(names) == 0 {
		cmd.Println("No archives processed.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
