package solver

import (
	"errors"
	"fmt"
)

// Failure kinds for a solve, in the order the pipeline can hit them.
var (
	ErrConflicts     = errors.New("grid has conflicting digits")
	ErrInvalidPuzzle = errors.New("grid leaves a cell with no candidate")
	ErrUnsolvable    = errors.New("propagation reached a contradiction")
	ErrNoSolution    = errors.New("search exhausted every branch")
)

// ConflictError carries the cells involved in duplicated digits, sorted
// ascending. It unwraps to ErrConflicts.
type ConflictError struct {
	Cells []int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d cells", ErrConflicts, len(e.Cells))
}

func (e *ConflictError) Unwrap() error { return ErrConflicts }

// Stable wire codes for the failure kinds.
const (
	KindConflicts  = "conflicts_found"
	KindInvalid    = "invalid_puzzle"
	KindUnsolvable = "unsolvable_puzzle"
	KindNoSolution = "no_solution_found"
	KindInternal   = "internal"
)

// ErrorKind maps a solver error to its wire code. Returns "" for nil and
// KindInternal for anything the solver did not produce.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConflicts):
		return KindConflicts
	case errors.Is(err, ErrInvalidPuzzle):
		return KindInvalid
	case errors.Is(err, ErrUnsolvable):
		return KindUnsolvable
	case errors.Is(err, ErrNoSolution):
		return KindNoSolution
	default:
		return KindInternal
	}
}
