package driving

import (
	"context"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

// ArchiveDriver ingests archives that the ledger has not seen yet.
type ArchiveDriver interface {
	// Run ingests every unprocessed archive in dir matching the configured
	// pattern, in name order. Per-file errors are joined; the loop continues.
	Run(ctx context.Context, dir string, limit int64) ([]domain.IngestSummary, error)

	// Process ingests a single archive unless it is already in the ledger,
	// in which case it returns domain.ErrAlreadyIngested.
	Process(ctx context.Context, path string, limit int64) (*domain.IngestSummary, error)

	// Processed returns the ledger contents.
	Processed() ([]string, error)
}
