package driving

import (
	"context"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

// QueryService exposes the read-only query surface of the store.
type QueryService interface {
	// Query runs a read-only SQL statement.
	Query(ctx context.Context, sql string) (*domain.ResultSet, error)

	// QueryLimit runs sql and stops reading after maxRows rows.
	QueryLimit(ctx context.Context, sql string, maxRows int) (*domain.ResultSet, error)

	// Tables lists the stored tables and their DDL.
	Tables(ctx context.Context) ([]domain.TableInfo, error)
}
