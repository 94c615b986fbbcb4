package composite

// State is the lifecycle state of a Composite.
type State uint8

const (
	// StateEmpty is a new executor without children.
	StateEmpty State = iota
	// StatePopulated has children that have not been validated since the last change.
	StatePopulated
	// StateValidated passed validation.
	StateValidated
	// StateRunning is executing passes.
	StateRunning
	// StateCompleted finished because its budget was exhausted.
	StateCompleted
	// StateFailed stopped on a validation error or an uncontained failure.
	StateFailed
	// StateDisposed has been closed. It is terminal.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StatePopulated:
		return "Populated"
	case StateValidated:
		return "Validated"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	case StateDisposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}
