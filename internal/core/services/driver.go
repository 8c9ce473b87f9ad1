package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
	"github.com/custodia-labs/rcingest/internal/core/ports/driving"
	"github.com/custodia-labs/rcingest/internal/logger"
)

// Ensure ArchiveDriver implements the interface.
var _ driving.ArchiveDriver = (*ArchiveDriver)(nil)

// ArchiveDriver ingests archives the ledger has not seen and records the
// ones that succeed. The ingest service itself never consults the ledger.
type ArchiveDriver struct {
	ingest  driving.IngestService
	ledger  driven.Ledger
	pattern string
	mark    bool
}

// NewArchiveDriver creates a driver matching archives against pattern.
// When mark is false the ledger is read but never written.
func NewArchiveDriver(ingest driving.IngestService, ledger driven.Ledger, pattern string, mark bool) *ArchiveDriver {
	return &ArchiveDriver{
		ingest:  ingest,
		ledger:  ledger,
		pattern: pattern,
		mark:    mark,
	}
}

// Run ingests every unprocessed archive in dir, in name order.
// A failed archive is reported and the loop moves on, unless the failure
// means no later archive can succeed.
func (d *ArchiveDriver) Run(ctx context.Context, dir string, limit int64) ([]domain.IngestSummary, error) {
	paths, err := filepath.Glob(filepath.Join(dir, d.pattern))
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", domain.ErrInvalidInput, d.pattern, err)
	}
	sort.Strings(paths)
	logger.Info("found %d archives in %s", len(paths), dir)

	var (
		summaries []domain.IngestSummary
		errs      []error
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		summary, err := d.Process(ctx, path, limit)
		if errors.Is(err, domain.ErrAlreadyIngested) {
			logger.Info("skipping %s: already ingested", filepath.Base(path))
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
			if fatalToRun(err) {
				break
			}
			continue
		}
		summaries = append(summaries, *summary)
	}

	return summaries, errors.Join(errs...)
}

// fatalToRun reports errors that would fail every remaining archive too.
func fatalToRun(err error) bool {
	return errors.Is(err, domain.ErrWriteRejected) ||
		errors.Is(err, domain.ErrIngestInProgress) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Process ingests one archive unless the ledger lists it, and marks it on
// success.
func (d *ArchiveDriver) Process(ctx context.Context, path string, limit int64) (*domain.IngestSummary, error) {
	name := filepath.Base(path)

	done, err := d.ledger.Contains(name)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if done {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyIngested, name)
	}

	summary, err := d.ingest.Ingest(ctx, path, limit)
	if err != nil {
		return summary, err
	}

	if d.mark {
		if err := d.ledger.Mark(name); err != nil {
			return summary, fmt.Errorf("mark %s: %w", name, err)
		}
	}
	return summary, nil
}

// Processed returns the ledger contents.
func (d *ArchiveDriver) Processed() ([]string, error) {
	return d.ledger.List()
}
