// Package countdown provides the time budget policies polled by executors
// before every pass.
package countdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
)

var (
	_ ports.TimeBudget = (*Once)(nil)
	_ ports.TimeBudget = (*Timer)(nil)
	_ ports.TimeBudget = Func(nil)
	_ ports.Rearmer    = (*Once)(nil)
	_ ports.Rearmer    = (*Timer)(nil)
)

// Once grants a single pass per cycle. It answers true, then false, and
// then starts over so a nested executor gets one pass per parent pass.
type Once struct {
	spent bool
}

// Remains reports whether the current cycle still has its pass.
func (o *Once) Remains() bool {
	o.spent = !o.spent
	return o.spent
}

// Rearm starts a new cycle.
func (o *Once) Rearm() {
	o.spent = false
}

// Func adapts a plain predicate to ports.TimeBudget.
type Func func() bool

// Remains calls f.
func (f Func) Remains() bool {
	return f()
}

// Timer grants passes until one of its limits is reached.
// A zero limit is ignored. With no limit at all it behaves like Once.
type Timer struct {
	// Total is the run time measured from the first poll.
	Total time.Duration
	// End is an absolute deadline.
	End time.Time
	// Iterations caps the number of passes.
	Iterations int

	clock   clockwork.Clock
	started bool
	start   time.Time
	passes  int
	once    Once
}

// NewTimer creates a Timer from a run file countdown section.
// A nil clock uses the real clock.
func NewTimer(cd domain.Countdown, clock clockwork.Clock) *Timer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{
		Total:      cd.Total,
		End:        cd.End,
		Iterations: cd.Iterations,
		clock:      clock,
	}
}

// Remains reports whether another pass is authorized.
func (t *Timer) Remains() bool {
	if t.unlimited() {
		return t.once.Remains()
	}
	if t.clock == nil {
		t.clock = clockwork.NewRealClock()
	}

	now := t.clock.Now()
	if !t.started {
		t.started = true
		t.start = now
		t.passes = 0
	}

	if t.exhausted(now) {
		t.started = false
		return false
	}
	t.passes++
	return true
}

// Rearm starts a new cycle; the clock restarts on the next poll.
func (t *Timer) Rearm() {
	t.started = false
	t.passes = 0
	t.once.Rearm()
}

// Passes returns the passes granted in the current cycle.
func (t *Timer) Passes() int {
	return t.passes
}

func (t *Timer) unlimited() bool {
	return t.Total <= 0 && t.End.IsZero() && t.Iterations <= 0
}

func (t *Timer) exhausted(now time.Time) bool {
	if t.Iterations > 0 && t.passes >= t.Iterations {
		return true
	}
	if t.Total > 0 && now.Sub(t.start) >= t.Total {
		return true
	}
	if !t.End.IsZero() && !now.Before(t.End) {
		return true
	}
	return false
}

func (t *Timer) String() string {
	if t.unlimited() {
		return "Countdown -- single pass"
	}
	var parts []string
	if t.Total > 0 {
		parts = append(parts, "time: "+t.Total.String())
	}
	if !t.End.IsZero() {
		parts = append(parts, "end: "+t.End.Format(time.RFC3339))
	}
	if t.Iterations > 0 {
		parts = append(parts, fmt.Sprintf("iterations: %d", t.Iterations))
	}
	return "Countdown -- " + strings.Join(parts, ", ")
}
