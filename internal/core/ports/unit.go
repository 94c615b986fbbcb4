// Package ports defines the core interfaces for the application.
package ports

import "context"

// Unit is a piece of work an executor can invoke.
//
//go:generate mockgen -source=unit.go -destination=mocks/mock_unit.go -package=mocks
type Unit interface {
	// Invoke performs the unit's action.
	// The executor inspects only the returned error.
	Invoke(ctx context.Context) error
}

// Validator is implemented by units that can check their own invariants.
type Validator interface {
	// Validate returns an error wrapping domain.ErrConfiguration when the
	// unit's state violates its invariants.
	Validate() error
}

// Disposer is implemented by units holding resources that must be released.
// It has the shape of io.Closer so files and connections conform as-is.
type Disposer interface {
	Close() error
}
