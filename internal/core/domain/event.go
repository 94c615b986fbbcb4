package domain

import "time"

// EventKind identifies what an executor is reporting.
type EventKind uint8

const (
	// EventStarted is emitted once an executor has validated and begins its passes.
	EventStarted EventKind = iota
	// EventProgress is emitted before each child invocation.
	EventProgress
	// EventFailure is emitted when a child failure was contained.
	EventFailure
	// EventEnded is emitted after the last pass.
	EventEnded
	// EventNonConformant is emitted when a child lacks an optional capability.
	EventNonConformant
)

// String returns the lower-case name of the kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventProgress:
		return "progress"
	case EventFailure:
		return "failure"
	case EventEnded:
		return "ended"
	case EventNonConformant:
		return "nonconformant"
	default:
		return "unknown"
	}
}

// Event is a single progress or status report from an executor.
type Event struct {
	Kind       EventKind
	Time       time.Time
	Identifier string
	Category   string
	// Index is the 1-based position of Unit within the executor.
	Index int
	Total int
	Unit  string
	// Capability names the missing method for EventNonConformant.
	Capability string
	Err        error
}
