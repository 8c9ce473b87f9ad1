package zstd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
)

// Ensure Opener and Reader implement the interfaces.
var (
	_ driven.ArchiveOpener = (*Opener)(nil)
	_ driven.ArchiveReader = (*Reader)(nil)
)

// Opener opens zstd archives.
type Opener struct{}

// NewOpener creates a new zstd archive opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the archive at path.
func (o *Opener) Open(path string, opts driven.ReadOptions) (driven.ArchiveReader, error) {
	return Open(path, opts)
}

// Reader enumerates the JSON records of one zstd archive.
type Reader struct {
	file    *os.File
	counter *countingReader
	dec     *zstd.Decoder
	opts    driven.ReadOptions

	chunk []byte
	buf   []byte // carry-over followed by the current window
	pos   int    // start of unconsumed bytes in buf
	eof   bool
	err   error

	stats      domain.ReadStats
	nextReport int64
}

// Open opens path and prepares the decoder. Zero options take the defaults.
func Open(path string, opts driven.ReadOptions) (*Reader, error) {
	opts = withDefaults(opts)

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	counter := &countingReader{r: f}
	dec, err := zstd.NewReader(counter, zstd.WithDecoderMaxWindow(uint64(opts.FrameWindow)))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	r := &Reader{
		file:       f,
		counter:    counter,
		dec:        dec,
		opts:       opts,
		chunk:      make([]byte, opts.ChunkSize),
		stats:      domain.ReadStats{TotalBytes: info.Size()},
		nextReport: opts.ProgressEvery,
	}
	r.report()
	return r, nil
}

func withDefaults(opts driven.ReadOptions) driven.ReadOptions {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = domain.DefaultChunkSize
	}
	if opts.MaxWindow <= 0 {
		opts.MaxWindow = domain.DefaultMaxWindow
	}
	if opts.MaxWindow < opts.ChunkSize {
		opts.MaxWindow = opts.ChunkSize
	}
	if opts.FrameWindow <= 0 {
		opts.FrameWindow = domain.DefaultFrameWindow
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = domain.DefaultProgressEvery
	}
	return opts
}

// Next returns the next parsed record, or io.EOF when the stream or the
// limit is exhausted. Unparsable lines are counted as invalid and skipped.
func (r *Reader) Next() (domain.RawRecord, error) {
	for {
		if r.err != nil {
			return nil, r.err
		}
		if r.opts.Limit > 0 && r.stats.Lines() >= r.opts.Limit {
			return nil, io.EOF
		}

		if i := bytes.IndexByte(r.buf[r.pos:], '\n'); i >= 0 {
			line := r.buf[r.pos : r.pos+i]
			r.pos += i + 1
			if rec, ok := r.parse(line); ok {
				return rec, nil
			}
			continue
		}

		if r.eof {
			return nil, io.EOF
		}
		if err := r.fill(); err != nil {
			r.err = err
			return nil, err
		}
	}
}

// parse decodes one line. Blank lines are skipped without being counted.
func (r *Reader) parse(line []byte) (domain.RawRecord, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, false
	}

	var rec domain.RawRecord
	if err := json.Unmarshal(line, &rec); err != nil || rec == nil {
		r.stats.Invalid++
		r.tick()
		return nil, false
	}
	r.stats.Valid++
	r.tick()
	return rec, true
}

// fill reads the next window of decompressed text. Chunks are accumulated
// until the window is valid UTF-8.
func (r *Reader) fill() error {
	if r.pos > 0 {
		n := copy(r.buf, r.buf[r.pos:])
		r.buf = r.buf[:n]
		r.pos = 0
	}

	start := len(r.buf)
	for {
		n, err := io.ReadFull(r.dec, r.chunk)
		r.buf = append(r.buf, r.chunk[:n]...)

		switch {
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			r.eof = true
		case err != nil:
			return fmt.Errorf("%w: %v", domain.ErrDecode, err)
		}

		window := r.buf[start:]
		if utf8.Valid(window) {
			r.report()
			return nil
		}
		if r.eof {
			return fmt.Errorf("%w: stream ends inside a multi-byte character", domain.ErrDecode)
		}
		if len(window) > r.opts.MaxWindow {
			return fmt.Errorf("%w: no valid text within %d bytes", domain.ErrDecode, len(window))
		}
	}
}

func (r *Reader) tick() {
	if r.stats.Lines() >= r.nextReport {
		r.nextReport += r.opts.ProgressEvery
		r.report()
	}
}

func (r *Reader) report() {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(r.Stats())
	}
}

// Stats returns the running counts.
func (r *Reader) Stats() domain.ReadStats {
	s := r.stats
	s.BytesRead = r.counter.Count()
	return s
}

// Close releases the decoder and closes the file.
func (r *Reader) Close() error {
	r.dec.Close()
	return r.file.Close()
}
