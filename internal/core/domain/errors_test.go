package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrDecode", ErrDecode},
		{"ErrMissingField", ErrMissingField},
		{"ErrInvalidField", ErrInvalidField},
		{"ErrIngestInProgress", ErrIngestInProgress},
		{"ErrAlreadyIngested", ErrAlreadyIngested},
		{"ErrWriteRejected", ErrWriteRejected},
		{"ErrStorageIO", ErrStorageIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrDecode, ErrMissingField,
		ErrInvalidField, ErrIngestInProgress, ErrAlreadyIngested, ErrWriteRejected,
		ErrStorageIO,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: chunk at offset %d", ErrDecode, 42)
	assert.True(t, errors.Is(wrapped, ErrDecode))
	assert.Contains(t, wrapped.Error(), "decode error")

	double := fmt.Errorf("ingest RC_2025-07.zst: %w", wrapped)
	assert.ErrorIs(t, double, ErrDecode)
	assert.NotErrorIs(t, double, ErrStorageIO)
}

func TestErrWriteRejected_Message(t *testing.T) {
	assert.Equal(t, "store is read-only", ErrWriteRejected.Error())
}
