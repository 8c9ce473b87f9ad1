package cli

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

var queryFormat string

var queryCmd = &cobra.Command{
	Use:   "query SQL",
	Short: "Run a read-only SQL query",
	Long: `Runs a SQL statement against the store and prints the result.
The store is opened read-only; statements that modify it fail.

Example:
  rcingest query "SELECT subreddit, count(*) AS n FROM comments GROUP BY 1 ORDER BY n DESC LIMIT 10"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", "table", "output format: table or csv")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryFormat != "table" && queryFormat != "csv" {
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, queryFormat)
	}

	a, err := newApp(cmd.Context(), appOptions{access: accessRead})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Query.Query(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryFormat == "csv" {
		return writeCSV(cmd, result)
	}
	writeTable(cmd, result)
	return nil
}

func writeTable(cmd *cobra.Command, result *domain.ResultSet) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(result.Columns...)
	for _, row := range result.Rows {
		t.Row(formatRow(row)...)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "(%d rows)\n", result.Len())
}

func writeCSV(cmd *cobra.Command, result *domain.ResultSet) error {
	w := csv.NewWriter(cmd.OutOrStdout())
	if err := w.Write(result.Columns); err != nil {
		return err
	}
	for _, row := range result.Rows {
		if err := w.Write(formatRow(row)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatRow(row []any) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = formatCell(v)
	}
	return cells
}

// formatCell renders a SQLite value; NULL prints as NULL.
func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
