package domain

// DefaultBatchSize is the number of records buffered before a flush.
const DefaultBatchSize = 100_000

// Batch is a columnar in-memory buffer of rows for one table.
// Each column holds its own value slice; a well-formed batch keeps all
// columns the same length.
type Batch struct {
	table   string
	columns []string
	values  [][]any
}

// ColumnMismatch reports a column whose length differs from the longest column.
type ColumnMismatch struct {
	Column   string
	Length   int
	Expected int
}

// NewBatch creates an empty batch for schema with room for capacity rows.
func NewBatch(schema TableSchema, capacity int) *Batch {
	if capacity < 0 {
		capacity = 0
	}
	b := &Batch{
		table:   schema.Name,
		columns: schema.ColumnNames(),
		values:  make([][]any, len(schema.Columns)),
	}
	for i := range b.values {
		b.values[i] = make([]any, 0, capacity)
	}
	return b
}

// Table returns the table name the batch is destined for.
func (b *Batch) Table() string {
	return b.table
}

// Columns returns the column names in order.
func (b *Batch) Columns() []string {
	return b.columns
}

// Append adds one row. values[i] is appended to column i; surplus values are
// dropped and missing values leave their columns short.
func (b *Batch) Append(values []any) {
	for i := range b.values {
		if i >= len(values) {
			break
		}
		b.values[i] = append(b.values[i], values[i])
	}
}

// Len returns the length of the longest column.
func (b *Batch) Len() int {
	longest := 0
	for _, col := range b.values {
		if len(col) > longest {
			longest = len(col)
		}
	}
	return longest
}

// Rows transposes the batch into row-major form. Rows are as many as the
// longest column; cells of shorter columns are nil. Every short column is
// reported as a mismatch.
func (b *Batch) Rows() ([][]any, []ColumnMismatch) {
	m := b.Len()

	var mismatches []ColumnMismatch
	for i, col := range b.values {
		if len(col) != m {
			mismatches = append(mismatches, ColumnMismatch{
				Column:   b.columns[i],
				Length:   len(col),
				Expected: m,
			})
		}
	}

	rows := make([][]any, m)
	for r := range rows {
		row := make([]any, len(b.values))
		for c, col := range b.values {
			if r < len(col) {
				row[c] = col[r]
			}
		}
		rows[r] = row
	}
	return rows, mismatches
}

// Reset clears the batch, keeping allocated capacity.
func (b *Batch) Reset() {
	for i := range b.values {
		clear(b.values[i])
		b.values[i] = b.values[i][:0]
	}
}
