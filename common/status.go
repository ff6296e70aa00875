package common

import "errors"

type Statuser interface {
	Status() Status
}

// CheckStatus checks the status of a variadic number of statusers and
// returns the first one that is not Continue
func CheckStatus(cs ...Statuser) Status {
	for _, val := range cs {
		c := val.Status()
		if c != Continue {
			return c
		}
	}
	return Continue
}

var statusStrings = map[Status]string{
	Continue:           "Continue",
	FunctionConverged:  "FunctionConverged",
	LocChangeConverged: "LocChangeConverged",
	ExactRoot:          "ExactRoot",
	BoundsConverged:    "BoundsConverged",

	UserFunctionError:          "ErrorInUserFunction",
	InvalidBracket:             "InvalidBracket",
	DegenerateInterval:         "DegenerateInterval",
	ZeroDerivative:             "ZeroDerivative",
	MaximumIterations:          "MaximumIterations",
	MaximumFunctionEvaluations: "MaximumFunctionEvaluations",
	MaximumRuntime:             "MaximumRuntimeElapsed",
	Cancelled:                  "Cancelled",
}

// Status is a type for expressing if a root finder has finished or not.
// Zero signifies no convergence or error so the finder should continue.
// Positive values indicate successful convergence,
// negative values express failure in some way.
type Status int

func (s Status) String() string {
	str, ok := statusStrings[s]
	if !ok {
		return "UnregisteredStatus"
	}
	return str
}

// Converged is true for statuses that end with a root estimate.
func (s Status) Converged() bool { return s > 0 }

// Failed is true for statuses that end without a root estimate.
func (s Status) Failed() bool { return s < 0 }

// Exhausted is true when a budget (iterations, evaluations or runtime) ran out.
func (s Status) Exhausted() bool {
	return s == MaximumIterations || s == MaximumFunctionEvaluations || s == MaximumRuntime
}

// Err returns the sentinel error for a failure status, or nil.
func (s Status) Err() error {
	switch s {
	case UserFunctionError:
		return ErrUserFunction
	case InvalidBracket:
		return ErrInvalidBracket
	case DegenerateInterval:
		return ErrDegenerateInterval
	case ZeroDerivative:
		return ErrZeroDerivative
	case MaximumIterations, MaximumFunctionEvaluations, MaximumRuntime:
		return ErrNotConverged
	case Cancelled:
		return ErrCancelled
	}
	return nil
}

const (
	Continue           Status = iota
	FunctionConverged         // |f(x)| fell below the tolerance
	LocChangeConverged        // |x_{n+1} - x_n| fell below the tolerance
	ExactRoot                 // f(x) evaluated to exactly zero
	BoundsConverged           // the bracket collapsed
)

const (
	_                        = iota
	UserFunctionError Status = -1 * iota
	InvalidBracket
	DegenerateInterval
	ZeroDerivative
	MaximumIterations
	MaximumFunctionEvaluations
	MaximumRuntime
	Cancelled
)

var (
	ErrUserFunction       = errors.New("roots: function returned NaN or Inf")
	ErrInvalidBracket     = errors.New("roots: f(a) and f(b) must have opposite signs")
	ErrDegenerateInterval = errors.New("roots: f(a) == f(b), interpolation undefined")
	ErrZeroDerivative     = errors.New("roots: derivative is zero")
	ErrNotConverged       = errors.New("roots: did not converge")
	ErrCancelled          = errors.New("roots: cancelled")
	ErrNoDerivative       = errors.New("roots: function has no derivative and numeric fallback is disabled")
)

// StatusOf returns the failure status matching err, or Continue if err is
// not one of the root finding sentinels.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return Continue
	case errors.Is(err, ErrUserFunction):
		return UserFunctionError
	case errors.Is(err, ErrInvalidBracket):
		return InvalidBracket
	case errors.Is(err, ErrDegenerateInterval):
		return DegenerateInterval
	case errors.Is(err, ErrZeroDerivative):
		return ZeroDerivative
	case errors.Is(err, ErrCancelled):
		return Cancelled
	}
	return Continue
}
