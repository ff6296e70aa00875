package common

import "math"

// Toler checks the convergence of a non-negative quantity (a residual |f(x)|
// or a step |x_{n+1} - x_n|) against an absolute tolerance. A NaN tolerance
// disables the check.
type Toler struct {
	tol    float64
	recent float64
	seen   bool
}

// Init resets the toler. The initial value is recorded but never counts as
// converged on its own; at least one Add is needed.
func (t *Toler) Init(tol, initVal float64) {
	t.tol = tol
	t.recent = initVal
	t.seen = false
}

// Add records the value produced by the latest iteration.
func (t *Toler) Add(v float64) {
	t.recent = v
	t.seen = true
}

// Enabled reports whether the toler takes part in convergence checks.
func (t *Toler) Enabled() bool {
	return !math.IsNaN(t.tol)
}

// Recent returns the last value added.
func (t *Toler) Recent() float64 {
	return t.recent
}

// Converged returns true if the most recent value is strictly below the tolerance
func (t *Toler) Converged() bool {
	if !t.seen || !t.Enabled() {
		return false
	}
	return t.recent < t.tol
}
