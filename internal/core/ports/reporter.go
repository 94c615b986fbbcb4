package ports

import "github.com/rsnakamura/theape/internal/core/domain"

// Reporter receives progress and status events from executors.
//
// Implementations must not block for long: they are called synchronously
// from the pass loop.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	Report(event domain.Event)
}
