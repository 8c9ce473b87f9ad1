package driven

import (
	"context"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

// RecordStore is the single-file relational store.
// Backed by SQLite. The writable flag is fixed when the store is opened.
type RecordStore interface {
	// Writable reports whether the store accepts inserts.
	Writable() bool

	// Path returns the database file path.
	Path() string

	// Size returns the current database file size in bytes.
	Size() (int64, error)

	// InsertRows writes rows into table in a single transaction using one
	// prepared statement. Either every row is committed or none is.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error

	// Query runs a read-only statement and returns the full result.
	Query(ctx context.Context, query string, args ...any) (*domain.ResultSet, error)

	// QueryLimit is Query reading at most maxRows rows; maxRows <= 0 reads all.
	// The result is marked truncated when further rows exist.
	QueryLimit(ctx context.Context, maxRows int, query string, args ...any) (*domain.ResultSet, error)

	// Tables lists the tables in the store with their DDL.
	Tables(ctx context.Context) ([]domain.TableInfo, error)

	// Close closes the underlying database.
	Close() error
}
