package domain

// ResultSet is a tabular query result.
// Cell values are int64, float64, string, []byte or nil.
// Truncated is set when a row cap stopped the scan with rows still unread.
type ResultSet struct {
	Columns   []string
	Rows      [][]any
	Truncated bool
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// TableInfo describes one table held by the store.
type TableInfo struct {
	Name string
	SQL  string
}
