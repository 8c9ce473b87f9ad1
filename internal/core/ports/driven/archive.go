package driven

import "github.com/custodia-labs/rcingest/internal/core/domain"

// ReadOptions tune how an archive is streamed.
// Zero values select the defaults in domain.
type ReadOptions struct {
	// Limit stops enumeration once this many lines were seen; 0 means unlimited.
	Limit int64

	// ChunkSize is the number of decompressed bytes read at a time.
	ChunkSize int

	// MaxWindow bounds the bytes accumulated while a chunk ends inside a
	// multi-byte character.
	MaxWindow int

	// FrameWindow is the largest zstd frame window accepted.
	FrameWindow int64

	// ProgressEvery is the number of lines between OnProgress calls.
	ProgressEvery int64

	// OnProgress, if set, is called after every chunk and every
	// ProgressEvery lines. It runs on the reading goroutine.
	OnProgress func(domain.ReadStats)
}

// ArchiveReader enumerates the records of one archive.
// It is used from a single goroutine.
type ArchiveReader interface {
	// Next returns the next parsed record.
	// Returns io.EOF when the archive or the limit is exhausted.
	// Lines that fail to parse are counted and skipped, never returned.
	// A decode failure wraps domain.ErrDecode and is final.
	Next() (domain.RawRecord, error)

	// Stats returns the running counts.
	Stats() domain.ReadStats

	// Close releases the decoder and the file.
	Close() error
}

// ArchiveOpener opens archives for streaming.
type ArchiveOpener interface {
	// Open opens the archive at path. The file is read once and never rewound.
	Open(path string, opts ReadOptions) (ArchiveReader, error)
}
