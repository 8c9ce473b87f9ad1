package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Options configure how a store is opened.
type Options struct {
	// Path is the database file. It is created empty if absent.
	Path string

	// Writable allows inserts and clearing.
	Writable bool

	// Clear drops every schema table before the schema is ensured.
	// Ignored for read-only stores.
	Clear bool

	// Backup copies a non-empty file to BackupDir before clearing.
	Backup bool

	// BackupDir receives backup copies.
	BackupDir string

	// Tables is the schema to ensure. Defaults to domain.StoreSchema().
	Tables []domain.TableSchema

	// Now returns the time used in backup names. Defaults to time.Now.
	Now func() time.Time
}

// Store is a SQLite-backed record store.
type Store struct {
	db         *sql.DB
	path       string
	writable   bool
	backupPath string
}

// Open opens or creates the store described by opts.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("%w: empty database path", domain.ErrInvalidInput)
	}
	if opts.Tables == nil {
		opts.Tables = domain.StoreSchema()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	for _, t := range opts.Tables {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}

	existing, err := ensureFile(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageIO, err)
	}

	s := &Store{
		path:     opts.Path,
		writable: opts.Writable,
	}

	clearing := opts.Writable && opts.Clear
	if clearing && opts.Backup && existing > 0 {
		s.backupPath, err = copyFile(opts.Path, opts.BackupDir, opts.Now())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStorageIO, err)
		}
	}

	db, err := sql.Open("sqlite", opts.Path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps query_only scoped to the call that set it.
	db.SetMaxOpenConns(1)
	s.db = db

	if clearing {
		if err := s.dropTables(ctx, opts.Tables); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %w", domain.ErrStorageIO, err)
		}
	}

	if err := s.ensureSchema(ctx, opts.Tables); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageIO, err)
	}

	return s, nil
}

// ensureFile creates path and its directory if absent and returns the
// size the file had before.
func ensureFile(path string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("creating data directory: %w", err)
	}

	info, err := os.Stat(path)
	if err == nil {
		return info.Size(), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("stat database: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return 0, fmt.Errorf("creating database: %w", err)
	}
	return 0, f.Close()
}

func (s *Store) dropTables(ctx context.Context, tables []domain.TableSchema) error {
	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(t.Name)); err != nil {
			return fmt.Errorf("dropping table %s: %w", t.Name, err)
		}
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("vacuuming database: %w", err)
	}
	return nil
}

func (s *Store) ensureSchema(ctx context.Context, tables []domain.TableSchema) error {
	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, CreateTableSQL(t)); err != nil {
			return fmt.Errorf("creating table %s: %w", t.Name, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Writable reports whether the store accepts inserts.
func (s *Store) Writable() bool {
	return s.writable
}

// BackupPath returns the backup written when the store was opened, if any.
func (s *Store) BackupPath() string {
	return s.backupPath
}

// Size returns the database file size in bytes.
func (s *Store) Size() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, fmt.Errorf("stat database: %w", err)
	}
	return info.Size(), nil
}

// InsertRows writes rows in one transaction with a single prepared statement.
// Any failure rolls back the whole call.
func (s *Store) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	if !s.writable {
		return domain.ErrWriteRejected
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, columns))
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	for i, row := range rows {
		for c := range args {
			args[c] = nil
			if c < len(row) {
				args[c] = bindValue(row[c])
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// bindValue maps Go booleans onto the 0/1 integers STRICT tables expect.
func bindValue(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return int64(1)
		}
		return int64(0)
	}
	return v
}

// Query runs a statement with the connection in query_only mode, so writes
// fail inside SQLite whatever the store's writable flag.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*domain.ResultSet, error) {
	return s.QueryLimit(ctx, 0, query, args...)
}

// QueryLimit is Query stopping after maxRows rows. One more row is stepped,
// not scanned, to tell whether the result was cut short.
func (s *Store) QueryLimit(ctx context.Context, maxRows int, query string, args ...any) (*domain.ResultSet, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("enabling query_only: %w", err)
	}
	defer conn.ExecContext(context.Background(), "PRAGMA query_only = OFF") //nolint:errcheck

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	result := &domain.ResultSet{Columns: columns}
	for rows.Next() {
		if maxRows > 0 && len(result.Rows) == maxRows {
			result.Truncated = true
			break
		}
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}

// Tables lists user tables and their DDL.
func (s *Store) Tables(ctx context.Context) ([]domain.TableInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, sql FROM sqlite_schema
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []domain.TableInfo
	for rows.Next() {
		var t domain.TableInfo
		if err := rows.Scan(&t.Name, &t.SQL); err != nil {
			return nil, fmt.Errorf("scanning table: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	return tables, nil
}
