// Package ledger records which archives have been fully ingested.
//
// The ledger is a plain text file holding one archive base name per line.
// It is only ever appended to.
package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
)

// Ensure File implements the interface.
var _ driven.Ledger = (*File)(nil)

// File is an append-only ledger file.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a ledger backed by path. The file is created on first Mark.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the ledger file path.
func (f *File) Path() string {
	return f.path
}

// Contains reports whether name is listed.
func (f *File) Contains(name string) (bool, error) {
	names, err := f.List()
	if err != nil {
		return false, err
	}
	return slices.Contains(names, filepath.Base(name)), nil
}

// Mark appends the base name of name and syncs the file.
func (f *File) Mark(name string) error {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: ledger entry %q", domain.ErrInvalidInput, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	names, err := f.list()
	if err != nil {
		return err
	}
	if slices.Contains(names, name) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	if _, err := file.WriteString(name + "\n"); err != nil {
		file.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("syncing ledger: %w", err)
	}
	return file.Close()
}

// List returns every listed name in file order. A missing file is empty.
func (f *File) List() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list()
}

func (f *File) list() ([]string, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return names, nil
}
