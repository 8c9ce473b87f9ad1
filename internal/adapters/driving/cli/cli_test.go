package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rcingest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rcingest/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/services"
)

// mockIngestService records ingested paths and fails those listed in errs.
type mockIngestService struct {
	paths  []string
	limits []int64
	errs   map[string]error
}

func (m *mockIngestService) Ingest(_ context.Context, path string, limit int64) (*domain.IngestSummary, error) {
	m.paths = append(m.paths, path)
	m.limits = append(m.limits, limit)
	if err := m.errs[path]; err != nil {
		return nil, err
	}
	return &domain.IngestSummary{File: path, Rows: 10, Rejected: 1}, nil
}

// mockArchiveDriver implements driving.ArchiveDriver for testing.
type mockArchiveDriver struct {
	dir       string
	limit     int64
	summaries []domain.IngestSummary
	processed []string
	err       error
}

func (m *mockArchiveDriver) Run(_ context.Context, dir string, limit int64) ([]domain.IngestSummary, error) {
	m.dir = dir
	m.limit = limit
	return m.summaries, m.err
}

func (m *mockArchiveDriver) Process(_ context.Context, _ string, _ int64) (*domain.IngestSummary, error) {
	return nil, m.err
}

func (m *mockArchiveDriver) Processed() ([]string, error) {
	return m.processed, m.err
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// useApp makes commands run against a and returns the options they asked for.
func useApp(t *testing.T, a *app) *[]appOptions {
	t.Helper()
	var seen []appOptions
	old := newApp
	newApp = func(_ context.Context, opts appOptions) (*app, error) {
		seen = append(seen, opts)
		return a, nil
	}
	t.Cleanup(func() { newApp = old })
	return &seen
}

// testApp returns an app with default settings, an in-memory config store
// and a real SQLite store holding the given comments.
func testApp(t *testing.T, ids ...string) *app {
	t.Helper()

	store, err := sqlite.Open(context.Background(), sqlite.Options{
		Path:     filepath.Join(t.TempDir(), "database.db"),
		Writable: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	schema := domain.CommentsSchema()
	rows := make([][]any, len(ids))
	for i, id := range ids {
		c := domain.Comment{ID: id, Author: "author_" + id, Body: "Hi.", Score: int64(i), Subreddit: "golang"}
		rows[i] = c.Values()
	}
	if len(rows) > 0 {
		require.NoError(t, store.InsertRows(context.Background(), schema.Name, schema.ColumnNames(), rows))
	}

	settings := domain.DefaultSettings()
	return &app{
		ConfigPath:      "/home/test/.rcingest/config.toml",
		Settings:        &settings,
		SettingsService: services.NewSettingsService(memory.NewConfigStore()),
		Query:           services.NewQueryService(store),
	}
}
