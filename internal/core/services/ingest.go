package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
	"github.com/custodia-labs/rcingest/internal/core/ports/driving"
	"github.com/custodia-labs/rcingest/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService streams archives through the normaliser into the store.
//
// Records are buffered in a columnar batch and committed one transaction per
// batch. With a positive queue size, reading and parsing run on their own
// goroutine and hand records over a bounded channel; order is preserved.
type IngestService struct {
	store      driven.RecordStore
	opener     driven.ArchiveOpener
	normaliser driven.Normaliser
	warnings   driven.WarningLogOpener
	reporter   driven.ProgressReporter
	settings   domain.IngestSettings

	mu sync.Mutex
}

// NewIngestService creates a new ingest service.
// reporter is optional; nil reports nothing.
func NewIngestService(
	store driven.RecordStore,
	opener driven.ArchiveOpener,
	normaliser driven.Normaliser,
	warnings driven.WarningLogOpener,
	reporter driven.ProgressReporter,
	settings domain.IngestSettings,
) *IngestService {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &IngestService{
		store:      store,
		opener:     opener,
		normaliser: normaliser,
		warnings:   warnings,
		reporter:   reporter,
		settings:   settings,
	}
}

// Ingest loads the archive at path, reading at most limit lines.
// On failure the returned summary describes the work committed before the
// error; the unflushed batch is discarded.
func (s *IngestService) Ingest(ctx context.Context, path string, limit int64) (*domain.IngestSummary, error) {
	if !s.store.Writable() {
		return nil, domain.ErrWriteRejected
	}
	if !s.mu.TryLock() {
		return nil, domain.ErrIngestInProgress
	}
	defer s.mu.Unlock()

	if limit < 0 {
		limit = 0
	}

	sizeBefore, err := s.store.Size()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageIO, err)
	}

	warnLog, err := s.warnings.OpenWarningLog()
	if err != nil {
		return nil, fmt.Errorf("open warning log: %w", err)
	}
	defer func() {
		if err := warnLog.Close(); err != nil {
			logger.Warn("closing warning log: %v", err)
		}
	}()

	run := &ingestRun{
		service: s,
		warn:    warnLog,
		start:   time.Now(),
		limit:   limit,
		summary: &domain.IngestSummary{
			RunID: uuid.New().String(),
			File:  path,
		},
		batchSize: s.settings.EffectiveBatchSize(limit),
	}
	run.batch = domain.NewBatch(s.normaliser.Schema(), run.batchSize)

	what := "all"
	if limit > 0 {
		what = strconv.FormatInt(limit, 10)
	}
	logger.Section(fmt.Sprintf("Reading %s lines from %s", what, filepath.Base(path)))

	reader, err := s.opener.Open(path, driven.ReadOptions{
		Limit:         limit,
		ChunkSize:     s.settings.ChunkSize,
		MaxWindow:     s.settings.MaxWindow,
		FrameWindow:   s.settings.FrameWindow,
		ProgressEvery: s.settings.ProgressEvery,
		OnProgress:    run.progress,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer reader.Close()

	if s.settings.QueueSize > 0 {
		err = run.pipelined(ctx, reader, s.settings.QueueSize)
	} else {
		err = run.sequential(ctx, reader)
	}

	summary := run.finish(reader.Stats(), sizeBefore)
	if err != nil {
		logger.Error("ingest %s: %v", filepath.Base(path), err)
		return summary, err
	}

	s.reporter.Progress(run.snapshot(reader.Stats(), true))
	s.reporter.Finish(*summary)
	logger.Info("ingested %s: %d rows in %d flushes", filepath.Base(path), summary.Rows, summary.Flushes)
	return summary, nil
}

// ingestRun holds the state of one Ingest call.
type ingestRun struct {
	service *IngestService
	warn    driven.WarningLog
	start   time.Time
	limit   int64

	batch     *domain.Batch
	batchSize int
	rejected  atomic.Int64
	summary   *domain.IngestSummary
}

// sequential reads, normalises and flushes on the calling goroutine.
func (r *ingestRun) sequential(ctx context.Context, reader driven.ArchiveReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := r.add(ctx, raw); err != nil {
			return err
		}
	}
	return r.flushRemainder(ctx)
}

// pipelined runs the reader and the loader as two stages joined by a
// bounded channel. An error in either stage cancels the other.
func (r *ingestRun) pipelined(ctx context.Context, reader driven.ArchiveReader, queueSize int) error {
	g, gctx := errgroup.WithContext(ctx)
	records := make(chan domain.RawRecord, queueSize)

	g.Go(func() error {
		defer close(records)
		for {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			select {
			case records <- raw:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		for raw := range records {
			if err := r.add(gctx, raw); err != nil {
				return err
			}
		}
		// The reader stopped early; drop the partial batch.
		if err := gctx.Err(); err != nil {
			return err
		}
		return r.flushRemainder(gctx)
	})

	return g.Wait()
}

// add normalises one record into the batch and flushes a full batch.
// Records that fail normalisation are counted and logged, never fatal.
func (r *ingestRun) add(ctx context.Context, raw domain.RawRecord) error {
	c, err := r.service.normaliser.Normalise(raw)
	if err != nil {
		r.rejected.Add(1)
		if id, ok := raw.String("id"); ok {
			r.warn.Warnf("Rejected record %s: %v", id, err)
		} else {
			r.warn.Warnf("Rejected record: %v", err)
		}
		return nil
	}

	r.batch.Append(c.Values())
	if r.batch.Len() >= r.batchSize {
		return r.flush(ctx)
	}
	return nil
}

func (r *ingestRun) flushRemainder(ctx context.Context) error {
	if r.batch.Len() == 0 {
		return nil
	}
	return r.flush(ctx)
}

// flush commits the batch as one transaction and clears it.
// Short columns are logged and padded with NULL; an empty batch is logged
// and not written.
func (r *ingestRun) flush(ctx context.Context) error {
	rows, mismatches := r.batch.Rows()
	for _, m := range mismatches {
		r.warn.Warnf("Column %s has length %d (expected %d)", m.Column, m.Length, m.Expected)
	}
	if len(rows) == 0 {
		r.warn.Warnf("Attempted to insert with no values! (m=%d)", 0)
		return nil
	}

	if err := r.service.store.InsertRows(ctx, r.batch.Table(), r.batch.Columns(), rows); err != nil {
		return fmt.Errorf("%w: flush %d rows: %w", domain.ErrStorageIO, len(rows), err)
	}

	r.summary.Rows += int64(len(rows))
	r.summary.Flushes++
	r.batch.Reset()
	logger.Debug("flushed %d rows to %s", len(rows), r.batch.Table())
	return nil
}

// progress forwards reader progress to the reporter.
// It runs on the reading goroutine.
func (r *ingestRun) progress(stats domain.ReadStats) {
	r.service.reporter.Progress(r.snapshot(stats, false))
}

func (r *ingestRun) snapshot(stats domain.ReadStats, done bool) domain.Progress {
	return domain.Progress{
		File:      r.summary.File,
		ReadStats: stats,
		Rejected:  r.rejected.Load(),
		Limit:     r.limit,
		Elapsed:   time.Since(r.start),
		Done:      done,
	}
}

// finish fills in the counters that are only known at the end.
func (r *ingestRun) finish(stats domain.ReadStats, sizeBefore int64) *domain.IngestSummary {
	r.summary.ReadStats = stats
	r.summary.Rejected = r.rejected.Load()
	r.summary.Warnings = r.warn.Count()
	r.summary.Elapsed = time.Since(r.start)

	if sizeAfter, err := r.service.store.Size(); err == nil {
		r.summary.StoreSizeDelta = sizeAfter - sizeBefore
	} else {
		logger.Warn("reading store size: %v", err)
	}
	return r.summary
}

// nopReporter is used when no reporter is configured.
type nopReporter struct{}

func (nopReporter) Progress(domain.Progress) {}
func (nopReporter) Finish(domain.IngestSummary) {}
