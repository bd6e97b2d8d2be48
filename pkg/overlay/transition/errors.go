package transition

import (
	"errors"
	"fmt"
)

// ErrInvalidState matches every *InvalidStateError via errors.Is.
var ErrInvalidState = errors.New("invalid presentation state")

// ErrNilSurface is returned by Present when given no surface.
var ErrNilSurface = errors.New("present: nil surface")

// InvalidStateError is a lifecycle call made outside its legal state. It
// indicates a caller bug; the coordinator's state is left untouched.
type InvalidStateError struct {
	Op     string
	State  State
	Detail string
}

func (e *InvalidStateError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cannot %s while %s: %s", e.Op, e.State, e.Detail)
	}
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// ActionIndexError is an ActionSelected reason naming no action.
type ActionIndexError struct {
	Index int
	Count int
}

func (e *ActionIndexError) Error() string {
	return fmt.Sprintf("action index %d out of range (surface has %d actions)", e.Index, e.Count)
}
