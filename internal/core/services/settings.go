package services

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
	"github.com/custodia-labs/rcingest/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStorePath        = "store.path"
	KeyStoreBackup      = "store.backup"
	KeyStoreBackupDir   = "store.backup_dir"
	KeyInputDir         = "ingest.input_dir"
	KeyPattern          = "ingest.pattern"
	KeyLedgerPath       = "ingest.ledger"
	KeyWarnLog          = "ingest.warn_log"
	KeyLimit            = "ingest.limit"
	KeyBatchSize        = "ingest.batch_size"
	KeyChunkSize        = "ingest.chunk_size"
	KeyMaxWindow        = "ingest.max_window"
	KeyFrameWindow      = "ingest.frame_window"
	KeyProgressEvery    = "ingest.progress_every"
	KeyQueueSize        = "ingest.queue_size"
	KeyLedgerMark       = "ledger.mark"
	KeyWatchSettleDelay = "watch.settle_seconds"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
)

// binding ties a config key to a field of domain.Settings.
type binding struct {
	key  string
	kind valueKind

	// Exactly one accessor is set.
	str   func(*domain.Settings) *string
	num   func(*domain.Settings) *int64
	small func(*domain.Settings) *int
	flag  func(*domain.Settings) *bool
}

func (b binding) render(s *domain.Settings) string {
	switch {
	case b.str != nil:
		return *b.str(s)
	case b.num != nil:
		return strconv.FormatInt(*b.num(s), 10)
	case b.small != nil:
		return strconv.Itoa(*b.small(s))
	default:
		return strconv.FormatBool(*b.flag(s))
	}
}

// assign stores a typed value into s.
func (b binding) assign(s *domain.Settings, v any) error {
	switch b.kind {
	case kindString:
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be a string, got %T", domain.ErrInvalidInput, b.key, v)
		}
		*b.str(s) = str
	case kindBool:
		flag, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: %s must be a boolean, got %T", domain.ErrInvalidInput, b.key, v)
		}
		*b.flag(s) = flag
	case kindInt:
		n, ok := asInt64(v)
		if !ok {
			return fmt.Errorf("%w: %s must be an integer, got %T", domain.ErrInvalidInput, b.key, v)
		}
		if b.num != nil {
			*b.num(s) = n
			return nil
		}
		if !fits[int32](n) {
			return fmt.Errorf("%w: %s out of range: %d", domain.ErrInvalidInput, b.key, n)
		}
		*b.small(s) = int(n)
	}
	return nil
}

// parse converts text into the value type of the binding.
func (b binding) parse(text string) (any, error) {
	switch b.kind {
	case kindBool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not a boolean", domain.ErrInvalidInput, b.key, text)
		}
		return v, nil
	case kindInt:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not an integer", domain.ErrInvalidInput, b.key, text)
		}
		return v, nil
	default:
		return text, nil
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int64(n), true
		}
	}
	return 0, false
}

// fits reports whether n survives conversion to T unchanged.
func fits[T constraints.Integer](n int64) bool {
	return int64(T(n)) == n
}

var bindings = []binding{
	{key: KeyStorePath, kind: kindString, str: func(s *domain.Settings) *string { return &s.Store.Path }},
	{key: KeyStoreBackup, kind: kindBool, flag: func(s *domain.Settings) *bool { return &s.Store.Backup }},
	{key: KeyStoreBackupDir, kind: kindString, str: func(s *domain.Settings) *string { return &s.Store.BackupDir }},
	{key: KeyInputDir, kind: kindString, str: func(s *domain.Settings) *string { return &s.Ingest.InputDir }},
	{key: KeyPattern, kind: kindString, str: func(s *domain.Settings) *string { return &s.Ingest.Pattern }},
	{key: KeyLedgerPath, kind: kindString, str: func(s *domain.Settings) *string { return &s.Ingest.Ledger }},
	{key: KeyWarnLog, kind: kindString, str: func(s *domain.Settings) *string { return &s.Ingest.WarnLog }},
	{key: KeyLimit, kind: kindInt, num: func(s *domain.Settings) *int64 { return &s.Ingest.Limit }},
	{key: KeyBatchSize, kind: kindInt, small: func(s *domain.Settings) *int { return &s.Ingest.BatchSize }},
	{key: KeyChunkSize, kind: kindInt, small: func(s *domain.Settings) *int { return &s.Ingest.ChunkSize }},
	{key: KeyMaxWindow, kind: kindInt, small: func(s *domain.Settings) *int { return &s.Ingest.MaxWindow }},
	{key: KeyFrameWindow, kind: kindInt, num: func(s *domain.Settings) *int64 { return &s.Ingest.FrameWindow }},
	{key: KeyProgressEvery, kind: kindInt, num: func(s *domain.Settings) *int64 { return &s.Ingest.ProgressEvery }},
	{key: KeyQueueSize, kind: kindInt, small: func(s *domain.Settings) *int { return &s.Ingest.QueueSize }},
	{key: KeyLedgerMark, kind: kindBool, flag: func(s *domain.Settings) *bool { return &s.Ledger.Mark }},
	{key: KeyWatchSettleDelay, kind: kindInt, small: func(s *domain.Settings) *int { return &s.Watch.SettleSeconds }},
}

func lookup(key string) (binding, bool) {
	for _, b := range bindings {
		if b.key == key {
			return b, true
		}
	}
	return binding{}, false
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns stored values merged over the defaults.
// A stored value of the wrong type is an error rather than silently ignored.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	for _, b := range bindings {
		v, ok := s.configStore.Get(b.key)
		if !ok {
			continue
		}
		if err := b.assign(&settings, v); err != nil {
			return nil, err
		}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Set parses value for key, checks the resulting settings and persists it.
func (s *SettingsService) Set(key, value string) error {
	b, ok := lookup(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	v, err := b.parse(value)
	if err != nil {
		return err
	}

	current, err := s.Get()
	if err != nil {
		return err
	}
	candidate := *current
	if err := b.assign(&candidate, v); err != nil {
		return err
	}
	if err := candidate.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, v); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Keys returns every recognised key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(bindings))
	for i, b := range bindings {
		keys[i] = b.key
	}
	return keys
}

// Value returns the effective value of key.
func (s *SettingsService) Value(key string) (string, error) {
	b, ok := lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	return b.render(settings), nil
}
