package sqlite

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// backupTimeFormat is used in backup file names.
const backupTimeFormat = "20060102T150405Z"

// backupName returns a unique backup file name for t.
func backupName(t time.Time) string {
	return fmt.Sprintf("backup-%s-%s.db", t.UTC().Format(backupTimeFormat), uuid.New().String()[:8])
}

// copyFile copies src byte-for-byte into a new file in dir and returns its path.
// The copy is synced before returning.
func copyFile(src, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer in.Close()

	dst := filepath.Join(dir, backupName(now))
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("copying database: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return "", fmt.Errorf("syncing backup: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing backup: %w", err)
	}
	return dst, nil
}
