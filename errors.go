package symgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNilEngine is returned when a policy that reads the process tree
	// or terminates states is configured without an engine.
	ErrNilEngine = errors.New("execution engine must not be nil")

	// ErrNilStats is returned when a statistics-driven policy is
	// configured without a statistics provider.
	ErrNilStats = errors.New("statistics provider must not be nil")

	// ErrMergeOverRandomPath is returned when a merging policy would wrap
	// a searcher with no-op state removal. Such a stack loops forever in
	// selection, so it is rejected at construction.
	ErrMergeOverRandomPath = errors.New("merging searcher cannot wrap random-path")
)

// ErrUnknownSearcher indicates an unrecognized searcher name in the
// configuration.
type ErrUnknownSearcher struct {
	Name string
}

func (e *ErrUnknownSearcher) Error() string {
	return fmt.Sprintf("unknown searcher %q", e.Name)
}

// ErrInvalidRatio indicates a recovery split ratio outside [0,100].
type ErrInvalidRatio struct {
	Ratio int
}

func (e *ErrInvalidRatio) Error() string {
	return fmt.Sprintf("invalid split ratio %d: must be in [0,100]", e.Ratio)
}

// ErrInvalidBudget indicates a batching configuration with no effective
// budget.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidBudget struct {
	cause error
}

func (e *ErrInvalidBudget) Error() string {
	return "batching requires a positive time or instruction budget"
}

func (e *ErrInvalidBudget) Unwrap() error { return e.cause }
