package driven

import "github.com/custodia-labs/rcingest/internal/core/domain"

// ProgressReporter observes ingestion without influencing it.
// Calls arrive from the reading goroutine and must not block for long.
type ProgressReporter interface {
	// Progress reports the state of the archive being read.
	Progress(p domain.Progress)

	// Finish reports the outcome of one archive.
	Finish(s domain.IngestSummary)
}
