package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/rcingest/internal/adapters/driven/archive/zstd"
	"github.com/custodia-labs/rcingest/internal/adapters/driven/config/file"
	"github.com/custodia-labs/rcingest/internal/adapters/driven/ledger"
	"github.com/custodia-labs/rcingest/internal/adapters/driven/progress"
	"github.com/custodia-labs/rcingest/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/rcingest/internal/adapters/driven/warnlog"
	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
	"github.com/custodia-labs/rcingest/internal/core/ports/driving"
	"github.com/custodia-labs/rcingest/internal/core/services"
	"github.com/custodia-labs/rcingest/internal/logger"
	"github.com/custodia-labs/rcingest/internal/normalisers/comment"
)

// access is how much of the application a command needs.
type access int

const (
	accessConfig access = iota // settings service only
	accessLedger               // settings and ledger
	accessRead                 // read-only store
	accessWrite                // writable store and ingestion
)

// appOptions are per-command overrides applied on top of the settings.
type appOptions struct {
	access   access
	clear    bool
	noBackup bool
	quiet    bool

	// queueSize overrides ingest.queue_size when set.
	queueSize *int

	// out receives progress output.
	out io.Writer
}

// app holds the services a command runs against. Services a command did not
// ask for are nil.
type app struct {
	ConfigPath string
	Settings   *domain.Settings
	BackupPath string

	SettingsService driving.SettingsService
	Ingest          driving.IngestService
	Driver          driving.ArchiveDriver
	Query           driving.QueryService

	closers []io.Closer
}

// Close releases the store.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// newApp builds the application. Tests replace it.
var newApp = buildApp

func buildApp(ctx context.Context, opts appOptions) (*app, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	a := &app{
		ConfigPath:      configStore.Path(),
		SettingsService: services.NewSettingsService(configStore),
	}
	if opts.access == accessConfig {
		return a, nil
	}

	settings, err := a.SettingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if storePath != "" {
		settings.Store.Path = storePath
	}
	if opts.queueSize != nil {
		settings.Ingest.QueueSize = *opts.queueSize
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	a.Settings = settings

	ledgerFile := ledger.NewFile(settings.Ingest.Ledger)
	if opts.access == accessLedger {
		a.Driver = services.NewArchiveDriver(nil, ledgerFile, settings.Ingest.Pattern, settings.Ledger.Mark)
		return a, nil
	}

	store, err := sqlite.Open(ctx, sqlite.Options{
		Path:      settings.Store.Path,
		Writable:  opts.access == accessWrite,
		Clear:     opts.clear,
		Backup:    settings.Store.Backup && !opts.noBackup,
		BackupDir: settings.Store.BackupDir,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store)
	a.BackupPath = store.BackupPath()
	a.Query = services.NewQueryService(store)
	logger.Debug("opened %s (writable=%t)", store.Path(), store.Writable())

	var reporter driven.ProgressReporter = progress.Discard{}
	if !opts.quiet && opts.out != nil {
		reporter = progress.NewTerminal(opts.out)
	}

	if opts.access == accessWrite {
		a.Ingest = services.NewIngestService(
			store,
			zstd.NewOpener(),
			comment.New(),
			warnlog.NewOpener(settings.Ingest.WarnLog),
			reporter,
			settings.Ingest,
		)
	}
	a.Driver = services.NewArchiveDriver(a.Ingest, ledgerFile, settings.Ingest.Pattern, settings.Ledger.Mark)
	return a, nil
}
