package progress

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

// defaultBarWidth is used when the terminal width is unknown.
const defaultBarWidth = 50

// FormatDuration renders d as "1 hour, 2 mins, 3 secs", omitting zero units.
// Durations under a second render as "0 secs".
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs <= 0 {
		return "0 secs"
	}

	var parts []string
	for _, u := range []struct {
		name string
		size int64
	}{
		{"hour", 3600},
		{"min", 60},
		{"sec", 1},
	} {
		n := secs / u.size
		secs %= u.size
		if n == 0 {
			continue
		}
		unit := u.name
		if n != 1 {
			unit += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, unit))
	}
	return strings.Join(parts, ", ")
}

// FormatBytes renders n in binary units, e.g. "1.2 GiB".
func FormatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// Bar renders a fixed-width bar for fraction f, split into its filled and
// empty parts so the caller can style them separately.
func Bar(f float64, width int) (filled, empty string) {
	if width <= 0 {
		width = defaultBarWidth
	}
	n := int(f * float64(width))
	n = min(max(n, 0), width)
	return strings.Repeat("=", n), strings.Repeat(" ", width-n)
}

// ETA renders the remaining-time estimate.
func ETA(p domain.Progress) string {
	if p.Fraction() >= 1 {
		return "Done"
	}
	eta, ok := p.ETA()
	if !ok {
		return "Unknown"
	}
	return FormatDuration(eta)
}

// Line renders one status line for p. styleBar is applied to the filled
// part of the bar.
func Line(p domain.Progress, barWidth int, styleBar func(string) string) string {
	f := p.Fraction()
	filled, empty := Bar(f, barWidth)
	if styleBar != nil && filled != "" {
		filled = styleBar(filled)
	}

	return fmt.Sprintf("%s (%d/%d/%d) -- [%s%s] %.2f%% (%s/%s) -- ETA: %s",
		filepath.Base(p.File),
		p.Valid, p.Rejected, p.Invalid,
		filled, empty,
		f*100,
		FormatBytes(p.BytesRead), FormatBytes(p.TotalBytes),
		ETA(p),
	)
}

// Summary renders the report printed when an archive finishes.
func Summary(s domain.IngestSummary) []string {
	return []string{
		fmt.Sprintf("Finished reading %s (elapsed: %s)", filepath.Base(s.File), FormatDuration(s.Elapsed)),
		fmt.Sprintf("Read size: %s", FormatBytes(s.BytesRead)),
		fmt.Sprintf("Lines: %d valid, %d rejected, %d invalid (%s lines/s)",
			s.Valid, s.Rejected, s.Invalid, humanize.Comma(int64(s.LinesPerSecond()))),
		fmt.Sprintf("Rows stored: %d in %d flushes", s.Rows, s.Flushes),
		fmt.Sprintf("Database size (difference): %s", FormatBytes(s.StoreSizeDelta)),
		fmt.Sprintf("Warnings: %d", s.Warnings),
	}
}
