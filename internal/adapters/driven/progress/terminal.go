package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
)

// Ensure reporters implement the interface.
var (
	_ driven.ProgressReporter = (*Terminal)(nil)
	_ driven.ProgressReporter = Discard{}
)

// RedrawInterval is the minimum time between two redraws.
const RedrawInterval = 100 * time.Millisecond

// Terminal draws progress on a single redrawn line.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	limiter  *rate.Limiter
	barWidth int
	barStyle lipgloss.Style
	styled   bool
	lastLen  int
}

// NewTerminal creates a reporter writing to out. When out is a terminal the
// bar is sized to its width and coloured.
func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{
		out:      out,
		limiter:  rate.NewLimiter(rate.Every(RedrawInterval), 1),
		barWidth: defaultBarWidth,
		barStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}

	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.styled = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			t.barWidth = barWidthFor(w)
		}
	}
	return t
}

// barWidthFor leaves room for the rest of the line on narrow terminals.
func barWidthFor(termWidth int) int {
	return min(max(termWidth/3, 10), defaultBarWidth)
}

// Progress redraws the status line, at most once per RedrawInterval.
// Final frames are always drawn.
func (t *Terminal) Progress(p domain.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !p.Done && p.Fraction() < 1 && !t.limiter.Allow() {
		return
	}

	var style func(string) string
	if t.styled {
		style = func(s string) string { return t.barStyle.Render(s) }
	}
	plain := Line(p, t.barWidth, nil)
	line := plain
	if style != nil {
		line = Line(p, t.barWidth, style)
	}

	pad := ""
	if t.lastLen > len(plain) {
		pad = strings.Repeat(" ", t.lastLen-len(plain))
	}
	fmt.Fprintf(t.out, "\r%s%s", line, pad)
	t.lastLen = len(plain)
}

// Finish ends the status line and prints the summary.
func (t *Terminal) Finish(s domain.IngestSummary) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lastLen > 0 {
		fmt.Fprintln(t.out)
		t.lastLen = 0
	}
	for _, line := range Summary(s) {
		fmt.Fprintln(t.out, line)
	}
}

// Discard drops all progress.
type Discard struct{}

// Progress does nothing.
func (Discard) Progress(domain.Progress) {}

// Finish does nothing.
func (Discard) Finish(domain.IngestSummary) {}
