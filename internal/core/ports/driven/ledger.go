package driven

// Ledger records which archives have been fully ingested.
// Entries are archive base names, one per line.
type Ledger interface {
	// Contains reports whether name was marked.
	Contains(name string) (bool, error)

	// Mark appends name. Marking an already listed name is a no-op.
	Mark(name string) error

	// List returns every marked name in the order they were marked.
	List() ([]string, error)
}
