// Package watcher ingests archives as they appear in a directory.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driving"
	"github.com/custodia-labs/rcingest/internal/logger"
)

// DefaultSettle is how long a file must go without events before it is ingested.
const DefaultSettle = 5 * time.Second

// Config configures a Watcher.
type Config struct {
	// Dir is the directory to watch. Subdirectories are not watched.
	Dir string

	// Pattern matches archive base names.
	Pattern string

	// Settle is the quiet period before a file is handed to the driver.
	Settle time.Duration

	// Limit is passed through to each ingest; 0 means unlimited.
	Limit int64
}

// Watcher hands archives to the driver once they stop changing.
// Archives are processed one at a time on the Run goroutine.
type Watcher struct {
	driver driving.ArchiveDriver
	cfg    Config

	// pending maps a path to the time of its last event.
	pending map[string]time.Time
}

// New creates a watcher.
func New(driver driving.ArchiveDriver, cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: empty watch directory", domain.ErrInvalidInput)
	}
	if _, err := filepath.Match(cfg.Pattern, ""); err != nil || cfg.Pattern == "" {
		return nil, fmt.Errorf("%w: watch pattern %q", domain.ErrInvalidInput, cfg.Pattern)
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
	return &Watcher{
		driver:  driver,
		cfg:     cfg,
		pending: make(map[string]time.Time),
	}, nil
}

// Run watches until ctx is cancelled. Ingest failures are logged, not returned.
// Archives already in the directory are queued once the watch is registered,
// so a file landing while the backlog is ingested still gets an event.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.cfg.Dir, err)
	}
	logger.Info("watching %s for %s (settle %s)", w.cfg.Dir, w.cfg.Pattern, w.cfg.Settle)

	backlog, err := w.seed(time.Now())
	if err != nil {
		return err
	}
	if backlog > 0 {
		logger.Info("queued %d existing archives", backlog)
	}

	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if len(w.pending) > 0 {
				logger.Info("stopping with %d unsettled archives", len(w.pending))
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.observe(event, time.Now())

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case now := <-ticker.C:
			w.sweep(ctx, now)
		}
	}
}

// seed marks every matching file already in the directory as pending.
// The driver skips the ones the ledger lists.
func (w *Watcher) seed(at time.Time) (int, error) {
	paths, err := filepath.Glob(filepath.Join(w.cfg.Dir, w.cfg.Pattern))
	if err != nil {
		return 0, fmt.Errorf("%w: watch pattern %q", domain.ErrInvalidInput, w.cfg.Pattern)
	}
	for _, path := range paths {
		w.pending[path] = at
	}
	return len(paths), nil
}

// tick is the sweep interval: a fraction of the settle time, at least 10ms.
func (w *Watcher) tick() time.Duration {
	return max(w.cfg.Settle/4, 10*time.Millisecond)
}

// observe records a create or write of a matching file.
func (w *Watcher) observe(event fsnotify.Event, at time.Time) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			delete(w.pending, event.Name)
		}
		return
	}
	if ok, _ := filepath.Match(w.cfg.Pattern, filepath.Base(event.Name)); !ok {
		return
	}
	if _, seen := w.pending[event.Name]; !seen {
		logger.Debug("archive appeared: %s", event.Name)
	}
	w.pending[event.Name] = at
}

// sweep processes every file that has been quiet for the settle period,
// in name order.
func (w *Watcher) sweep(ctx context.Context, now time.Time) {
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.cfg.Settle {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)

	for _, path := range ready {
		if ctx.Err() != nil {
			return
		}
		delete(w.pending, path)
		w.process(ctx, path)
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	summary, err := w.driver.Process(ctx, path, w.cfg.Limit)
	switch {
	case errors.Is(err, domain.ErrAlreadyIngested):
		logger.Info("skipping %s: already ingested", filepath.Base(path))
	case err != nil:
		logger.Error("ingesting %s: %v", filepath.Base(path), err)
	default:
		logger.Info("ingested %s: %d rows", filepath.Base(path), summary.Rows)
	}
}
