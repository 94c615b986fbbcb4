package composite

import (
	"fmt"

	"github.com/rsnakamura/theape/internal/core/domain"
)

// Failure is a child failure contained by an executor.
// It matches both domain.ErrChildFailed and the underlying error.
type Failure struct {
	Message string
	Unit    string
	Index   int
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Message, f.Unit, f.Err)
}

// Unwrap exposes the child-failed marker and the original error.
func (f *Failure) Unwrap() []error {
	return []error{domain.ErrChildFailed, f.Err}
}

type nopReporter struct{}

func (nopReporter) Report(domain.Event) {}

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}
