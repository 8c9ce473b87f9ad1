package mcp

import (
	"context"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
// QueryLimit caps rows the way the store does.
type mockQueryService struct {
	result  *domain.ResultSet
	tables  []domain.TableInfo
	err     error
	lastSQL string
	lastMax int
}

func (m *mockQueryService) Query(ctx context.Context, sql string) (*domain.ResultSet, error) {
	return m.QueryLimit(ctx, sql, 0)
}

func (m *mockQueryService) QueryLimit(_ context.Context, sql string, maxRows int) (*domain.ResultSet, error) {
	m.lastSQL = sql
	m.lastMax = maxRows
	if m.err != nil || m.result == nil {
		return m.result, m.err
	}
	out := *m.result
	if maxRows > 0 && len(out.Rows) > maxRows {
		out.Rows = out.Rows[:maxRows]
		out.Truncated = true
	}
	return &out, nil
}

func (m *mockQueryService) Tables(_ context.Context) ([]domain.TableInfo, error) {
	return m.tables, m.err
}

// mockArchiveDriver is a mock implementation of driving.ArchiveDriver.
type mockArchiveDriver struct {
	processed []string
	err       error
}

func (m *mockArchiveDriver) Run(_ context.Context, _ string, _ int64) ([]domain.IngestSummary, error) {
	return nil, m.err
}

func (m *mockArchiveDriver) Process(_ context.Context, _ string, _ int64) (*domain.IngestSummary, error) {
	return nil, m.err
}

func (m *mockArchiveDriver) Processed() ([]string, error) {
	return m.processed, m.err
}
