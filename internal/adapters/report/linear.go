// Package report provides human-readable reporters for executor events.
package report

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"github.com/rsnakamura/theape/internal/ui/output"
	"github.com/rsnakamura/theape/internal/ui/style"
)

var _ ports.Reporter = (*Linear)(nil)

// Linear writes one line per event in the order events arrive.
type Linear struct {
	w      io.Writer
	output *termenv.Output
	pretty bool

	mu     sync.Mutex
	starts map[string]time.Time // identifier -> start time
}

// NewLinear creates a Linear reporter. A nil writer reports to stderr.
// ModeAuto is treated as pretty; callers resolve it beforehand.
func NewLinear(w io.Writer, mode output.Mode) *Linear {
	if w == nil {
		w = os.Stderr
	}
	return &Linear{
		w:      w,
		output: output.ForMode(w, mode),
		pretty: mode != output.ModePlain,
		starts: make(map[string]time.Time),
	}
}

// Report prints the event.
//
//nolint:gocritic // ports.Reporter passes events by value
func (r *Linear) Report(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e.Kind {
	case domain.EventStarted:
		r.starts[e.Identifier] = e.Time
		r.printf("%s\n", r.paint(fmt.Sprintf("*** %s Started ***", e.Identifier), style.Iris, true))
	case domain.EventProgress:
		r.printf("%s\n", r.paint(fmt.Sprintf("** %s %d of %d (%s) **", e.Category, e.Index, e.Total, e.Unit), style.Slate, false))
	case domain.EventFailure:
		symbol := r.paint(style.Cross, style.Red, false)
		r.printf("%s %s %d of %d (%s) failed: %v\n", symbol, e.Category, e.Index, e.Total, e.Unit, e.Err)
	case domain.EventNonConformant:
		symbol := r.paint(style.Warning, style.Yellow, false)
		r.printf("%s %s does not implement %s\n", symbol, e.Unit, e.Capability)
	case domain.EventEnded:
		symbol := r.paint(style.Check, style.Green, false)
		line := fmt.Sprintf("*** %s Ended ***", e.Identifier)
		if start, ok := r.starts[e.Identifier]; ok {
			delete(r.starts, e.Identifier)
			line = fmt.Sprintf("*** %s Ended (%s completed in %v) ***", e.Identifier, symbol, e.Time.Sub(start).Round(time.Millisecond))
		}
		r.printf("%s\n", r.paint(line, style.Iris, true))
	}
}

func (r *Linear) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Linear) paint(s string, color lipgloss.Color, bold bool) string {
	if !r.pretty {
		return s
	}
	styled := r.output.String(s).Foreground(r.output.Color(string(color)))
	if bold {
		styled = styled.Bold()
	}
	return styled.String()
}

// Multi fans events out to several reporters in order.
type Multi []ports.Reporter

// Report forwards e to every reporter.
//
//nolint:gocritic // ports.Reporter passes events by value
func (m Multi) Report(e domain.Event) {
	for _, r := range m {
		if r != nil {
			r.Report(e)
		}
	}
}

// Nop discards events.
type Nop struct{}

// Report does nothing.
//
//nolint:gocritic // ports.Reporter passes events by value
func (Nop) Report(domain.Event) {}
