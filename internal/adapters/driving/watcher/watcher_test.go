package watcher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/logger"
)

// mockArchiveDriver records processed paths. gate, when set, runs before
// each path is recorded and can hold an ingest open.
type mockArchiveDriver struct {
	mu    sync.Mutex
	paths []string
	err   error
	gate  func(path string)
}

func (m *mockArchiveDriver) Run(_ context.Context, _ string, _ int64) ([]domain.IngestSummary, error) {
	return nil, nil
}

func (m *mockArchiveDriver) Process(_ context.Context, path string, _ int64) (*domain.IngestSummary, error) {
	if m.gate != nil {
		m.gate(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, path)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IngestSummary{File: path, Rows: 7}, nil
}

func (m *mockArchiveDriver) Processed() ([]string, error) {
	return nil, nil
}

func (m *mockArchiveDriver) processed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

func newTestWatcher(t *testing.T, driver *mockArchiveDriver, settle time.Duration) *Watcher {
	t.Helper()
	w, err := New(driver, Config{Dir: t.TempDir(), Pattern: "RC*.zst", Settle: settle})
	require.NoError(t, err)
	return w
}

func TestNew_Validation(t *testing.T) {
	driver := &mockArchiveDriver{}

	_, err := New(driver, Config{Pattern: "RC*.zst"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New(driver, Config{Dir: "in", Pattern: "RC["})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New(driver, Config{Dir: "in"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	w, err := New(driver, Config{Dir: "in", Pattern: "RC*.zst"})
	require.NoError(t, err)
	assert.Equal(t, DefaultSettle, w.cfg.Settle)
}

func TestWatcher_SettleResetsOnWrite(t *testing.T) {
	driver := &mockArchiveDriver{}
	w := newTestWatcher(t, driver, time.Second)
	start := time.Now()

	w.observe(fsnotify.Event{Name: "/in/RC_1.zst", Op: fsnotify.Create}, start)
	w.observe(fsnotify.Event{Name: "/in/RC_1.zst", Op: fsnotify.Write}, start.Add(800*time.Millisecond))

	w.sweep(context.Background(), start.Add(1500*time.Millisecond))
	assert.Empty(t, driver.processed())

	w.sweep(context.Background(), start.Add(1800*time.Millisecond))
	assert.Equal(t, []string{"/in/RC_1.zst"}, driver.processed())

	w.sweep(context.Background(), start.Add(5*time.Second))
	assert.Len(t, driver.processed(), 1)
}

func TestWatcher_IgnoresOtherEvents(t *testing.T) {
	driver := &mockArchiveDriver{}
	w := newTestWatcher(t, driver, time.Second)
	start := time.Now()

	w.observe(fsnotify.Event{Name: "/in/notes.txt", Op: fsnotify.Create}, start)
	w.observe(fsnotify.Event{Name: "/in/RS_1.zst", Op: fsnotify.Write}, start)
	w.observe(fsnotify.Event{Name: "/in/RC_1.zst", Op: fsnotify.Chmod}, start)

	assert.Empty(t, w.pending)
}

func TestWatcher_RemovedBeforeSettling(t *testing.T) {
	driver := &mockArchiveDriver{}
	w := newTestWatcher(t, driver, time.Second)
	start := time.Now()

	w.observe(fsnotify.Event{Name: "/in/RC_1.zst", Op: fsnotify.Create}, start)
	w.observe(fsnotify.Event{Name: "/in/RC_1.zst", Op: fsnotify.Rename}, start)
	w.sweep(context.Background(), start.Add(time.Hour))

	assert.Empty(t, driver.processed())
}

func TestWatcher_SweepOrder(t *testing.T) {
	driver := &mockArchiveDriver{}
	w := newTestWatcher(t, driver, time.Second)
	start := time.Now()

	for _, name := range []string{"/in/RC_3.zst", "/in/RC_1.zst", "/in/RC_2.zst"} {
		w.observe(fsnotify.Event{Name: name, Op: fsnotify.Create}, start)
	}
	w.sweep(context.Background(), start.Add(2*time.Second))

	assert.Equal(t, []string{"/in/RC_1.zst", "/in/RC_2.zst", "/in/RC_3.zst"}, driver.processed())
}

func TestWatcher_ProcessErrorsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	driver := &mockArchiveDriver{err: domain.ErrDecode}
	w := newTestWatcher(t, driver, time.Second)
	start := time.Now()

	w.observe(fsnotify.Event{Name: "/in/RC_1.zst", Op: fsnotify.Create}, start)
	w.sweep(context.Background(), start.Add(2*time.Second))

	assert.Contains(t, buf.String(), "[ERROR] ingesting RC_1.zst")
	assert.Empty(t, w.pending)
}

func TestWatcher_Run(t *testing.T) {
	driver := &mockArchiveDriver{}
	dir := t.TempDir()
	w, err := New(driver, Config{Dir: dir, Pattern: "RC*.zst", Settle: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "RC_2024-07.zst")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		return len(driver.processed()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, path, driver.processed()[0])

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_Run_MissingDir(t *testing.T) {
	w, err := New(&mockArchiveDriver{}, Config{Dir: filepath.Join(t.TempDir(), "nope"), Pattern: "RC*.zst"})
	require.NoError(t, err)

	err = w.Run(context.Background())

	assert.ErrorContains(t, err, "watching")
}

func TestWatcher_Seed(t *testing.T) {
	driver := &mockArchiveDriver{}
	w := newTestWatcher(t, driver, time.Second)
	for _, name := range []string{"RC_2.zst", "RC_1.zst", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(w.cfg.Dir, name), []byte("x"), 0o644))
	}
	start := time.Now()

	n, err := w.seed(start)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	w.sweep(context.Background(), start.Add(500*time.Millisecond))
	assert.Empty(t, driver.processed())

	w.sweep(context.Background(), start.Add(time.Second))
	assert.Equal(t, []string{
		filepath.Join(w.cfg.Dir, "RC_1.zst"),
		filepath.Join(w.cfg.Dir, "RC_2.zst"),
	}, driver.processed())
}

func TestWatcher_Run_ArchiveArrivesDuringBacklog(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "RC_2024-06.zst")
	arrived := filepath.Join(dir, "RC_2024-07.zst")
	require.NoError(t, os.WriteFile(existing, []byte("data"), 0o644))

	started := make(chan struct{})
	release := make(chan struct{})
	driver := &mockArchiveDriver{gate: func(path string) {
		if path == existing {
			close(started)
			<-release
		}
	}}
	w, err := New(driver, Config{Dir: dir, Pattern: "RC*.zst", Settle: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("existing archive was not picked up")
	}
	require.NoError(t, os.WriteFile(arrived, []byte("data"), 0o644))
	close(release)

	require.Eventually(t, func() bool {
		return len(driver.processed()) == 2
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{existing, arrived}, driver.processed())

	cancel()
	require.NoError(t, <-done)
}
