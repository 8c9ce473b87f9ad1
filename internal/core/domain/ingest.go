package domain

import "time"

// IngestSummary is the outcome of ingesting one archive.
type IngestSummary struct {
	// RunID uniquely identifies the ingest call.
	RunID string

	// File is the archive path.
	File string

	ReadStats

	// Rejected counts parsed records that failed normalisation.
	Rejected int64

	// Rows is the number of rows committed to the store.
	Rows int64

	// Flushes is the number of committed batch transactions.
	Flushes int

	// Warnings is the number of lines written to the warning log.
	Warnings int

	// StoreSizeDelta is the store file growth in bytes.
	StoreSizeDelta int64

	// Elapsed is the wall time of the call.
	Elapsed time.Duration
}

// LinesPerSecond returns the read throughput, or 0 if no time elapsed.
func (s IngestSummary) LinesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Lines()) / s.Elapsed.Seconds()
}
