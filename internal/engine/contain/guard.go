// Package contain provides a reusable failure containment combinator.
//
// A Guard wraps a call, recognises a declared error kind, converts and reports
// it, and then either swallows it or hands it back to the caller. Errors the
// guard does not recognise always propagate unchanged.
package contain

import "errors"

// Matcher reports whether err belongs to the kind a Guard contains.
type Matcher func(err error) bool

// Is matches errors that wrap kind.
func Is(kind error) Matcher {
	return func(err error) bool {
		return kind != nil && errors.Is(err, kind)
	}
}

// As matches errors that have a T somewhere in their chain.
func As[T error]() Matcher {
	return func(err error) bool {
		var target T
		return errors.As(err, &target)
	}
}

// Any matches errors accepted by at least one of the given matchers.
func Any(matchers ...Matcher) Matcher {
	return func(err error) bool {
		for _, m := range matchers {
			if m != nil && m(err) {
				return true
			}
		}
		return false
	}
}

// Guard contains the errors accepted by Match.
type Guard struct {
	// Match selects the errors this guard contains. A nil Match contains nothing.
	Match Matcher
	// Convert rewrites a contained error before it is reported. Optional.
	Convert func(err error) error
	// Report receives every contained error after conversion. Optional.
	Report func(err error)
	// Continue swallows contained errors instead of returning them.
	Continue bool
}

// Call runs fn under the guard.
func (g Guard) Call(fn func() error) error {
	return g.handle(fn())
}

// Contains reports whether the guard would contain err.
func (g Guard) Contains(err error) bool {
	return err != nil && g.Match != nil && g.Match(err)
}

func (g Guard) handle(err error) error {
	if !g.Contains(err) {
		return err
	}

	if g.Convert != nil {
		err = g.Convert(err)
	}
	if g.Report != nil {
		g.Report(err)
	}
	if g.Continue {
		return nil
	}
	return err
}

// Value runs fn under g and returns its value. When a contained error is
// swallowed the zero value is returned.
func Value[T any](g Guard, fn func() (T, error)) (T, error) {
	v, err := fn()
	if err == nil {
		return v, nil
	}
	if handled := g.handle(err); handled != nil {
		return v, handled
	}
	var zero T
	return zero, nil
}
