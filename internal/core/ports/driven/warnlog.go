package driven

// WarningLog receives recoverable diagnostics for one ingest call.
type WarningLog interface {
	// Warnf appends one "WARN: " line.
	Warnf(format string, args ...any)

	// Count returns the number of lines written.
	Count() int

	// Close flushes and closes the log, returning the first write error.
	Close() error
}

// WarningLogOpener opens a fresh warning log, discarding the previous one.
type WarningLogOpener interface {
	OpenWarningLog() (WarningLog, error)
}
