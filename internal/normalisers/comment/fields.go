package comment

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

// fieldReader extracts required literal fields from a record and keeps the
// first failure, so a row can be read top to bottom and checked once.
type fieldReader struct {
	raw domain.RawRecord
	err error
}

func (f *fieldReader) lookup(key string) (any, bool) {
	if f.err != nil {
		return nil, false
	}
	v, ok := f.raw.Lookup(key)
	if !ok || v == nil {
		f.err = fmt.Errorf("%w: %s", domain.ErrMissingField, key)
		return nil, false
	}
	return v, true
}

func (f *fieldReader) invalid(key string, v any) {
	f.err = fmt.Errorf("%w: %s has type %T", domain.ErrInvalidField, key, v)
}

// text reads a string field, trimmed. Integral numbers are rendered in base 10.
func (f *fieldReader) text(key string) string {
	v, ok := f.lookup(key)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if n, ok := integral(t); ok {
			return strconv.FormatInt(n, 10)
		}
	}
	f.invalid(key, v)
	return ""
}

// integer reads an integral number or a numeric string.
func (f *fieldReader) integer(key string) int64 {
	v, ok := f.lookup(key)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		if n, ok := integral(t); ok {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n
		}
	}
	f.invalid(key, v)
	return 0
}

// boolean reads a JSON boolean. The numbers 0 and 1 are accepted as well.
func (f *fieldReader) boolean(key string) bool {
	v, ok := f.lookup(key)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		if t == 0 || t == 1 {
			return t == 1
		}
	}
	f.invalid(key, v)
	return false
}

func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// truthy follows JSON truthiness: null, false, "", 0 and empty containers
// are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}
