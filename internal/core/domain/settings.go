package domain

import (
	"fmt"
	"path"
)

// Default sizes used by the archive reader.
const (
	// DefaultChunkSize is the number of decompressed bytes read per chunk.
	DefaultChunkSize = 1 << 27

	// DefaultMaxWindow bounds how many bytes may be accumulated while waiting
	// for a chunk boundary to land on a complete UTF-8 character.
	DefaultMaxWindow = 1 << 30

	// DefaultFrameWindow is the largest zstd frame window the decoder accepts.
	DefaultFrameWindow = 1 << 31

	// DefaultProgressEvery is the number of lines between progress reports.
	DefaultProgressEvery = 100_000

	// DefaultQueueSize is the record channel capacity of the ingest pipeline.
	DefaultQueueSize = 1024
)

// StoreSettings holds relational store configuration.
type StoreSettings struct {
	// Path is the database file.
	Path string

	// Backup enables a backup copy before a clearing open.
	Backup bool

	// BackupDir is where backup copies are written.
	BackupDir string
}

// IngestSettings holds archive ingestion configuration.
type IngestSettings struct {
	// InputDir is scanned for archives by the driver.
	InputDir string

	// Pattern is the archive file name glob.
	Pattern string

	// Ledger is the file listing archives already processed.
	Ledger string

	// WarnLog is the diagnostics file rewritten on every ingest call.
	WarnLog string

	// Limit is the maximum number of lines read per archive; 0 means unlimited.
	Limit int64

	// BatchSize is the number of records buffered before a flush.
	BatchSize int

	// ChunkSize is the number of decompressed bytes read at a time.
	ChunkSize int

	// MaxWindow bounds the UTF-8 retry accumulation.
	MaxWindow int

	// FrameWindow is the largest zstd frame window accepted.
	FrameWindow int64

	// ProgressEvery is the number of lines between progress reports.
	ProgressEvery int64

	// QueueSize is the pipeline channel capacity; 0 runs synchronously.
	QueueSize int
}

// LedgerSettings holds ledger behaviour.
type LedgerSettings struct {
	// Mark appends successfully ingested archives to the ledger.
	Mark bool
}

// WatchSettings holds directory watcher configuration.
type WatchSettings struct {
	// SettleSeconds is how long a file must stay unchanged before it is ingested.
	SettleSeconds int
}

// Settings holds all application settings.
type Settings struct {
	Store  StoreSettings
	Ingest IngestSettings
	Ledger LedgerSettings
	Watch  WatchSettings
}

// DefaultSettings returns settings with the defaults used when no
// configuration is present.
func DefaultSettings() Settings {
	return Settings{
		Store: StoreSettings{
			Path:      path.Join("data", "database.db"),
			Backup:    true,
			BackupDir: path.Join("data", "backup"),
		},
		Ingest: IngestSettings{
			InputDir:      "data",
			Pattern:       "RC*.zst",
			Ledger:        path.Join("data", "processed.txt"),
			WarnLog:       path.Join("data", "log.txt"),
			Limit:         0,
			BatchSize:     DefaultBatchSize,
			ChunkSize:     DefaultChunkSize,
			MaxWindow:     DefaultMaxWindow,
			FrameWindow:   DefaultFrameWindow,
			ProgressEvery: DefaultProgressEvery,
			QueueSize:     DefaultQueueSize,
		},
		Ledger: LedgerSettings{
			Mark: true,
		},
		Watch: WatchSettings{
			SettleSeconds: 5,
		},
	}
}

// Validate checks that sizes are usable and paths are set.
func (s Settings) Validate() error {
	switch {
	case s.Store.Path == "":
		return fmt.Errorf("%w: store.path is empty", ErrInvalidInput)
	case s.Ingest.BatchSize <= 0:
		return fmt.Errorf("%w: ingest.batch_size must be positive", ErrInvalidInput)
	case s.Ingest.ChunkSize <= 0:
		return fmt.Errorf("%w: ingest.chunk_size must be positive", ErrInvalidInput)
	case s.Ingest.MaxWindow < s.Ingest.ChunkSize:
		return fmt.Errorf("%w: ingest.max_window is smaller than ingest.chunk_size", ErrInvalidInput)
	case s.Ingest.QueueSize < 0:
		return fmt.Errorf("%w: ingest.queue_size is negative", ErrInvalidInput)
	case s.Ingest.Pattern == "":
		return fmt.Errorf("%w: ingest.pattern is empty", ErrInvalidInput)
	}
	if _, err := path.Match(s.Ingest.Pattern, ""); err != nil {
		return fmt.Errorf("%w: ingest.pattern: %v", ErrInvalidInput, err)
	}
	return nil
}

// EffectiveBatchSize returns the batch size clamped to a positive limit,
// so a small limited run does not allocate a full batch.
func (s IngestSettings) EffectiveBatchSize(limit int64) int {
	size := s.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	if limit > 0 && limit < int64(size) {
		return int(limit)
	}
	return size
}
