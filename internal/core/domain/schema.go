package domain

import (
	"fmt"
	"regexp"
)

// ColumnType is the declared type of a store column.
type ColumnType string

// Column types.
const (
	ColumnText    ColumnType = "TEXT"
	ColumnInteger ColumnType = "INTEGER"

	// ColumnBoolean has boolean semantics. Stores without a native boolean
	// render it as an integer constrained to {0,1}.
	ColumnBoolean ColumnType = "BOOLEAN"
)

// IsValid returns true if the column type is recognised.
func (t ColumnType) IsValid() bool {
	switch t {
	case ColumnText, ColumnInteger, ColumnBoolean:
		return true
	default:
		return false
	}
}

// Column is one column of a table schema.
type Column struct {
	// Name is the column identifier. For literal columns it matches the
	// archive field name.
	Name string

	// Type is the declared column type.
	Type ColumnType

	// Allowed optionally restricts an integer column to a closed set of codes.
	Allowed []int
}

// TableSchema is an ordered list of columns for one table.
type TableSchema struct {
	Name    string
	Columns []Column
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that the table and column names are plain identifiers,
// that column names are unique, and that every type is recognised.
// Identifiers are interpolated into DDL, so this is enforced before use.
func (s TableSchema) Validate() error {
	if !identifier.MatchString(s.Name) {
		return fmt.Errorf("%w: table name %q", ErrInvalidInput, s.Name)
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("%w: table %s has no columns", ErrInvalidInput, s.Name)
	}

	seen := make(map[string]bool, len(s.Columns))
	for _, col := range s.Columns {
		if !identifier.MatchString(col.Name) {
			return fmt.Errorf("%w: column name %q", ErrInvalidInput, col.Name)
		}
		if seen[col.Name] {
			return fmt.Errorf("%w: duplicate column %s", ErrInvalidInput, col.Name)
		}
		seen[col.Name] = true

		if !col.Type.IsValid() {
			return fmt.Errorf("%w: column %s has type %q", ErrInvalidInput, col.Name, col.Type)
		}
		if len(col.Allowed) > 0 && col.Type != ColumnInteger {
			return fmt.Errorf("%w: column %s restricts a non-integer type", ErrInvalidInput, col.Name)
		}
	}
	return nil
}

// ColumnNames returns the column names in declaration order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// CommentsTableName is the table normalised comments are stored in.
const CommentsTableName = "comments"

// CommentsSchema returns the schema of the comments table.
// Derived columns come first, then literal columns copied from the archive.
// The order must match Comment.Values.
func CommentsSchema() TableSchema {
	return TableSchema{
		Name: CommentsTableName,
		Columns: []Column{
			// derived
			{Name: "num_sentences", Type: ColumnInteger},
			{Name: "edited", Type: ColumnBoolean},
			{Name: "removal_type", Type: ColumnInteger, Allowed: []int{CodeError, 0, 1, 2, 3, 4}},
			{Name: "collapsed", Type: ColumnInteger, Allowed: []int{CodeError, 0, 1, 2, 3}},
			{Name: "distinguished", Type: ColumnInteger, Allowed: []int{CodeError, 0, 1, 2}},
			{Name: "subreddit_type", Type: ColumnInteger, Allowed: []int{CodeError, 0, 1, 2, 3}},

			// literal
			{Name: "author", Type: ColumnText},
			{Name: "body", Type: ColumnText},
			{Name: "created_utc", Type: ColumnInteger},
			{Name: "archived", Type: ColumnBoolean},
			{Name: "controversiality", Type: ColumnInteger},
			{Name: "id", Type: ColumnText},
			{Name: "link_id", Type: ColumnText},
			{Name: "locked", Type: ColumnBoolean},
			{Name: "is_submitter", Type: ColumnBoolean},
			{Name: "parent_id", Type: ColumnText},
			{Name: "score", Type: ColumnInteger},
			{Name: "subreddit_id", Type: ColumnText},
			{Name: "subreddit", Type: ColumnText},
			{Name: "stickied", Type: ColumnBoolean},
			{Name: "permalink", Type: ColumnText},
		},
	}
}

// StoreSchema returns every table the store holds.
func StoreSchema() []TableSchema {
	return []TableSchema{CommentsSchema()}
}
