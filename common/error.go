package common

import "fmt"

// Error reports a failed root finding run together with where it stopped.
type Error struct {
	Status     Status
	Iterations int
	Loc        float64 // last estimate, NaN if none was computed
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v after %d iterations (x = %g)", e.Unwrap(), e.Iterations, e.Loc)
}

func (e *Error) Unwrap() error {
	if err := e.Status.Err(); err != nil {
		return err
	}
	return fmt.Errorf("roots: unexpected status %v", e.Status)
}
