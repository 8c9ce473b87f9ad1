package driving

import (
	"context"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

// IngestService loads one archive into the store.
type IngestService interface {
	// Ingest streams the archive at path into the store, reading at most
	// limit lines (0 means unlimited). It always ingests, whatever the ledger
	// says. Flushed batches stay committed if the call fails part way.
	Ingest(ctx context.Context, path string, limit int64) (*domain.IngestSummary, error)
}
