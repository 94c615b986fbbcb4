package ports

// TimeBudget authorizes passes of an executor.
//
//go:generate mockgen -source=budget.go -destination=mocks/mock_budget.go -package=mocks
type TimeBudget interface {
	// Remains reports whether another pass is authorized.
	// It is polled once before every pass, including the first.
	Remains() bool
}

// Rearmer is implemented by budgets that can start a fresh cycle.
// Executors rearm their budget at the start of every invocation.
type Rearmer interface {
	Rearm()
}
