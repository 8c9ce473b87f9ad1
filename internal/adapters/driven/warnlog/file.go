// Package warnlog writes the per-ingest diagnostics file.
//
// Each ingest call truncates the file and appends one "WARN: " line per
// recoverable problem: column length mismatches, empty flushes and rejected
// records. Lines are flushed as they are written so the file is useful while
// a long ingest is still running.
package warnlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
)

// Ensure Opener and File implement the interfaces.
var (
	_ driven.WarningLogOpener = (*Opener)(nil)
	_ driven.WarningLog       = (*File)(nil)
)

// Prefix starts every line.
const Prefix = "WARN: "

// Opener opens the warning log at a fixed path.
type Opener struct {
	path string
}

// NewOpener returns an opener for path.
func NewOpener(path string) *Opener {
	return &Opener{path: path}
}

// OpenWarningLog truncates the log file and returns a writer for it.
func (o *Opener) OpenWarningLog() (driven.WarningLog, error) {
	return Open(o.path)
}

// File is a warning log backed by a file.
type File struct {
	mu    sync.Mutex
	file  *os.File
	w     *bufio.Writer
	count int
	err   error
}

// Open creates or truncates path.
func Open(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening warning log: %w", err)
	}
	return &File{file: f, w: bufio.NewWriter(f)}, nil
}

// Warnf appends one line. Write errors are kept and returned by Close.
func (l *File) Warnf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	if l.err != nil {
		return
	}
	if _, err := l.w.WriteString(Prefix + msg + "\n"); err != nil {
		l.err = err
		return
	}
	l.err = l.w.Flush()
}

// Count returns the number of lines written.
func (l *File) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Close flushes and closes the file.
func (l *File) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.w.Flush(); err != nil && l.err == nil {
		l.err = err
	}
	if err := l.file.Close(); err != nil && l.err == nil {
		l.err = err
	}
	return l.err
}
