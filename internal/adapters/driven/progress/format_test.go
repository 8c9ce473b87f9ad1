package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 secs"},
		{500 * time.Millisecond, "0 secs"},
		{time.Second, "1 sec"},
		{59 * time.Second, "59 secs"},
		{time.Minute, "1 min"},
		{3*time.Minute + 2*time.Second, "3 mins, 2 secs"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1 hour, 2 mins, 3 secs"},
		{26 * time.Hour, "26 hours"},
		{2*time.Hour + 5*time.Second, "2 hours, 5 secs"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "3.0 GiB", FormatBytes(3<<30))
	assert.Equal(t, "-2.0 MiB", FormatBytes(-2<<20))
}

func TestBar(t *testing.T) {
	tests := []struct {
		name   string
		f      float64
		width  int
		filled string
		empty  string
	}{
		{"empty", 0, 10, "", "          "},
		{"half", 0.5, 10, "=====", "     "},
		{"full", 1, 4, "====", ""},
		{"over", 1.5, 4, "====", ""},
		{"default width", 0, 0, "", "                                                  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filled, empty := Bar(tt.f, tt.width)
			assert.Equal(t, tt.filled, filled)
			assert.Equal(t, tt.empty, empty)
		})
	}
}

func TestETA(t *testing.T) {
	assert.Equal(t, "Unknown", ETA(domain.Progress{ReadStats: domain.ReadStats{TotalBytes: 100}}))
	assert.Equal(t, "Done", ETA(domain.Progress{ReadStats: domain.ReadStats{BytesRead: 100, TotalBytes: 100}}))

	quarter := domain.Progress{
		ReadStats: domain.ReadStats{BytesRead: 25, TotalBytes: 100},
		Elapsed:   time.Minute,
	}
	assert.Equal(t, "3 mins", ETA(quarter))
}

func TestLine(t *testing.T) {
	p := domain.Progress{
		File:      "data/RC_2024-06.zst",
		ReadStats: domain.ReadStats{BytesRead: 1 << 30, TotalBytes: 4 << 30, Valid: 1200, Invalid: 4},
		Rejected:  3,
		Elapsed:   time.Minute,
	}

	assert.Equal(t,
		"RC_2024-06.zst (1200/3/4) -- [==        ] 25.00% (1.0 GiB/4.0 GiB) -- ETA: 3 mins",
		Line(p, 10, nil))

	styled := Line(p, 10, func(s string) string { return "<" + s + ">" })
	assert.Contains(t, styled, "[<==>        ]")
}

func TestSummary(t *testing.T) {
	s := domain.IngestSummary{
		File:           "data/RC_2024-06.zst",
		ReadStats:      domain.ReadStats{BytesRead: 2048, Valid: 90, Invalid: 10},
		Rejected:       5,
		Rows:           85,
		Flushes:        1,
		Warnings:       5,
		StoreSizeDelta: 4096,
		Elapsed:        10 * time.Second,
	}

	lines := Summary(s)
	assert.Equal(t, "Finished reading RC_2024-06.zst (elapsed: 10 secs)", lines[0])
	assert.Equal(t, "Read size: 2.0 KiB", lines[1])
	assert.Equal(t, "Lines: 90 valid, 5 rejected, 10 invalid (10 lines/s)", lines[2])
	assert.Equal(t, "Rows stored: 85 in 1 flushes", lines[3])
	assert.Equal(t, "Database size (difference): 4.0 KiB", lines[4])
	assert.Equal(t, "Warnings: 5", lines[5])
}
