// Package composite implements the executor that runs an ordered tree of
// units as if it were a single unit.
//
// A Composite validates itself and its children, invokes every child once per
// pass for as long as its time budget authorizes passes, and contains failures
// of its configured trap kind so that one child cannot abort the others.
// Executors nest: a Composite is itself a ports.Unit.
package composite

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/jonboulle/clockwork"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"github.com/rsnakamura/theape/internal/engine/contain"
	"github.com/rsnakamura/theape/internal/engine/countdown"
	"go.trai.ch/zerr"
)

var (
	_ ports.Unit      = (*Composite)(nil)
	_ ports.Validator = (*Composite)(nil)
	_ ports.Disposer  = (*Composite)(nil)
)

// Config describes what a Composite traps and how it labels its reports.
// It may be left invalid; Validate reports the first violated condition.
type Config struct {
	// Trap is the failure kind contained per child. It must descend from
	// domain.ErrUnitFailure without being the root itself.
	Trap error
	// Message prefixes every contained failure.
	Message string
	// Category names the role of the children in progress reports.
	Category string
	// Identifier names this executor in start and end reports.
	Identifier string
}

// Option configures a Composite.
type Option func(*Composite)

// WithBudget sets the time budget polled before every pass.
func WithBudget(b ports.TimeBudget) Option {
	return func(c *Composite) {
		c.budget = b
	}
}

// WithReporter sets the sink for progress and status events.
func WithReporter(r ports.Reporter) Option {
	return func(c *Composite) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l ports.Logger) Option {
	return func(c *Composite) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Composite) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// Composite is an executor of an ordered collection of units.
// It is not safe for concurrent use.
type Composite struct {
	cfg      Config
	children []ports.Unit
	budget   ports.TimeBudget
	reporter ports.Reporter
	logger   ports.Logger
	clock    clockwork.Clock
	state    State

	validating bool
}

// New creates an empty Composite.
func New(cfg Config, opts ...Option) *Composite {
	c := &Composite{
		cfg:      cfg,
		reporter: nopReporter{},
		logger:   nopLogger{},
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the executor configuration.
func (c *Composite) Config() Config {
	return c.cfg
}

// State returns the current lifecycle state.
func (c *Composite) State() State {
	return c.state
}

// Budget returns the time budget, defaulting it to a single pass per cycle.
func (c *Composite) Budget() ports.TimeBudget {
	if c.budget == nil {
		c.budget = &countdown.Once{}
	}
	return c.budget
}

// SetBudget replaces the time budget.
func (c *Composite) SetBudget(b ports.TimeBudget) {
	c.budget = b
}

// Add appends u unless that same instance is already present. Instances are
// compared by pointer, so units should be pointers: a unit of any other kind
// is never found present and is appended every time it is added.
func (c *Composite) Add(u ports.Unit) error {
	switch c.state {
	case StateDisposed:
		return zerr.Wrap(domain.ErrExecutorClosed, "cannot add to a closed executor")
	case StateRunning:
		return zerr.Wrap(domain.ErrExecutorRunning, "cannot add while running")
	}
	if u == nil {
		return zerr.Wrap(domain.ErrNotInvokable, "cannot add a nil unit")
	}
	if sameUnit(u, c) {
		return zerr.With(zerr.Wrap(domain.ErrConfiguration, "executor cannot contain itself"), "executor", c.cfg.Identifier)
	}
	if c.indexOf(u) >= 0 {
		return nil
	}

	c.children = append(c.children, u)
	c.state = StatePopulated
	return nil
}

// Remove drops u if present. It never fails; misuse is logged.
func (c *Composite) Remove(u ports.Unit) {
	switch c.state {
	case StateDisposed:
		c.logger.Debug(fmt.Sprintf("remove ignored, %s is closed", c.label()))
		return
	case StateRunning:
		c.logger.Warn(fmt.Sprintf("remove ignored, %s is running", c.label()))
		return
	}

	i := c.indexOf(u)
	if i < 0 {
		c.logger.Debug(fmt.Sprintf("remove ignored, %s does not contain %s", c.label(), Label(u)))
		return
	}

	c.children = slices.Delete(c.children, i, i+1)
	if len(c.children) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StatePopulated
	}
}

// Len returns the number of children.
func (c *Composite) Len() int {
	return len(c.children)
}

// At returns the child at index i.
func (c *Composite) At(i int) ports.Unit {
	return c.children[i]
}

// All iterates the children in execution order.
func (c *Composite) All() iter.Seq2[int, ports.Unit] {
	return slices.All(c.children)
}

// OneCall invokes u and returns its error unchanged. It fails with
// domain.ErrNotInvokable when u is not a ports.Unit.
func (c *Composite) OneCall(ctx context.Context, u any) error {
	unit, ok := u.(ports.Unit)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrNotInvokable, "cannot invoke child"), "unit", Label(u))
	}
	return unit.Invoke(ctx)
}

// Validate checks the executor's own invariants and then every child,
// stopping at the first violation.
func (c *Composite) Validate() error {
	if c.state == StateDisposed {
		return zerr.Wrap(domain.ErrExecutorClosed, "cannot validate a closed executor")
	}
	if c.validating {
		return invalid("executor contains itself", "tree is acyclic")
	}
	if err := c.checkConfig(); err != nil {
		return err
	}

	c.validating = true
	defer func() { c.validating = false }()

	for i, child := range c.children {
		v, ok := child.(ports.Validator)
		if !ok {
			c.nonConformant(i, child, "Validate")
			continue
		}
		if err := v.Validate(); err != nil {
			if !errors.Is(err, domain.ErrConfiguration) {
				err = errors.Join(domain.ErrConfiguration, err)
			}
			return zerr.With(zerr.With(zerr.Wrap(err, "invalid child"), "condition", "child is valid"), "unit", Label(child))
		}
	}

	if c.state != StateRunning {
		c.state = StateValidated
	}
	return nil
}

func (c *Composite) checkConfig() error {
	switch {
	case c.cfg.Trap == nil:
		return invalid("trap is not an error kind", "trap is set")
	case c.cfg.Trap == domain.ErrUnitFailure:
		return invalid("trap is the abstract unit failure kind", "trap is concrete")
	case !errors.Is(c.cfg.Trap, domain.ErrUnitFailure):
		return invalid(fmt.Sprintf("trap %q is not a unit failure", kindName(c.cfg.Trap)), "trap descends from unit failure")
	case c.cfg.Message == "":
		return invalid("failure message is not set", "message is set")
	case c.cfg.Category == "":
		return invalid("category is not set", "category is set")
	}
	return nil
}

func invalid(msg, condition string) error {
	return zerr.With(zerr.Wrap(domain.ErrConfiguration, msg), "condition", condition)
}

// Invoke validates the executor and then runs passes over the children until
// the budget is exhausted. Contained failures are reported and skipped; any
// other error aborts the invocation and is returned.
//
// The context is checked between passes only; a running child is never
// interrupted by the executor.
func (c *Composite) Invoke(ctx context.Context) error {
	switch c.state {
	case StateDisposed:
		return zerr.Wrap(domain.ErrExecutorClosed, "cannot invoke a closed executor")
	case StateRunning:
		return zerr.With(zerr.Wrap(domain.ErrExecutorRunning, "executor invoked recursively"), "executor", c.cfg.Identifier)
	}

	if err := c.Validate(); err != nil {
		c.state = StateFailed
		return err
	}

	c.state = StateRunning
	c.emit(domain.Event{Kind: domain.EventStarted})

	budget := c.Budget()
	if r, ok := budget.(ports.Rearmer); ok {
		r.Rearm()
	}

	for {
		if err := ctx.Err(); err != nil {
			c.state = StateFailed
			return zerr.Wrap(err, "run interrupted")
		}
		if !budget.Remains() {
			break
		}
		if err := c.pass(ctx); err != nil {
			c.state = StateFailed
			return err
		}
	}

	c.emit(domain.Event{Kind: domain.EventEnded})
	c.state = StateCompleted
	return nil
}

func (c *Composite) pass(ctx context.Context) error {
	total := len(c.children)
	for i, child := range c.children {
		label := Label(child)
		c.emit(domain.Event{Kind: domain.EventProgress, Index: i + 1, Total: total, Unit: label})

		guard := contain.Guard{
			Match: contain.Is(c.cfg.Trap),
			Convert: func(err error) error {
				return &Failure{Message: c.cfg.Message, Unit: label, Index: i + 1, Err: err}
			},
			Report: func(err error) {
				c.emit(domain.Event{Kind: domain.EventFailure, Index: i + 1, Total: total, Unit: label, Err: err})
			},
			Continue: true,
		}
		if err := guard.Call(func() error { return c.OneCall(ctx, child) }); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every child that can be closed and empties the executor.
// The executor cannot be used afterwards. Close errors are joined.
func (c *Composite) Close() error {
	children := c.children
	c.children = nil
	c.state = StateDisposed

	var errs []error
	for i, child := range children {
		d, ok := child.(ports.Disposer)
		if !ok {
			c.nonConformantOf(i, len(children), child, "Close")
			continue
		}
		if err := d.Close(); err != nil {
			errs = append(errs, zerr.With(zerr.Wrap(err, "failed to close child"), "unit", Label(child)))
		}
	}
	return errors.Join(errs...)
}

// String renders the trap, the category and the number of children.
func (c *Composite) String() string {
	return fmt.Sprintf("Composite -- Traps: %s, %s Components: %d", kindName(c.cfg.Trap), c.cfg.Category, len(c.children))
}

func (c *Composite) label() string {
	if c.cfg.Identifier != "" {
		return c.cfg.Identifier
	}
	return c.String()
}

func (c *Composite) nonConformant(i int, child ports.Unit, capability string) {
	c.nonConformantOf(i, len(c.children), child, capability)
}

func (c *Composite) nonConformantOf(i, total int, child ports.Unit, capability string) {
	label := Label(child)
	c.logger.Warn(fmt.Sprintf("%s does not implement %s", label, capability))
	c.emit(domain.Event{
		Kind:       domain.EventNonConformant,
		Index:      i + 1,
		Total:      total,
		Unit:       label,
		Capability: capability,
	})
}

func (c *Composite) emit(e domain.Event) {
	e.Time = c.clock.Now()
	e.Identifier = c.cfg.Identifier
	e.Category = c.cfg.Category
	c.reporter.Report(e)
}

func (c *Composite) indexOf(u ports.Unit) int {
	return slices.IndexFunc(c.children, func(child ports.Unit) bool {
		return sameUnit(child, u)
	})
}

// sameUnit reports instance identity. Only pointer units have one; equal
// values of any other kind are distinct units.
func sameUnit(a, b ports.Unit) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || ta.Kind() != reflect.Pointer {
		return false
	}
	return a == b
}

// Label names a unit in reports: its String method when it has one,
// otherwise its Go type.
func Label(u any) string {
	if s, ok := u.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", u)
}

type messager interface {
	Message() string
}

func kindName(err error) string {
	if err == nil {
		return "<nil>"
	}
	if m, ok := err.(messager); ok {
		return m.Message()
	}
	return err.Error()
}
