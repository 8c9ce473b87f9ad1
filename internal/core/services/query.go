package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
	"github.com/custodia-labs/rcingest/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService runs read-only queries against the store.
// It works on read-only and writable stores alike.
type QueryService struct {
	store driven.RecordStore
}

// NewQueryService creates a new query service.
func NewQueryService(store driven.RecordStore) *QueryService {
	return &QueryService{store: store}
}

// Query runs sql and returns the full result.
func (s *QueryService) Query(ctx context.Context, sql string) (*domain.ResultSet, error) {
	return s.QueryLimit(ctx, sql, 0)
}

// QueryLimit runs sql reading at most maxRows rows. maxRows <= 0 reads all.
func (s *QueryService) QueryLimit(ctx context.Context, sql string, maxRows int) (*domain.ResultSet, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	return s.store.QueryLimit(ctx, maxRows, sql)
}

// Tables lists the stored tables and their DDL.
func (s *QueryService) Tables(ctx context.Context) ([]domain.TableInfo, error) {
	return s.store.Tables(ctx)
}
