package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the store's table definitions",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), appOptions{access: accessRead})
	if err != nil {
		return err
	}
	defer a.Close()

	tables, err := a.Query.Tables(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	for _, t := range tables {
		fmt.Fprintf(cmd.OutOrStdout(), "%s;\n\n", t.SQL)
	}
	return nil
}
