package univariate

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Albert-2002/Optimization/common"
	"github.com/Albert-2002/Optimization/write"
)

// Function is a scalar function whose root is sought
type Function interface {
	F(x float64) float64
}

type Deriver interface {
	Deriv(x float64) float64
}

type FuncDeriver interface {
	Function
	Deriver
}

// Settings is a structure containing settings for univariate
// root finders. Some settings may not apply to certain algorithms
type Settings struct {
	*common.CommonSettings
	*common.ConvergenceSettings

	// NumericDerivative lets derivative-based methods fall back to a central
	// difference when the function does not implement Deriver.
	NumericDerivative bool
	// DerivativeStep is the finite difference step. Zero uses the default
	// of the difference formula.
	DerivativeStep float64
}

// DefaultSettings returns the default settings for univariate root finders:
// a tolerance of 1e-6, at most 100 iterations, no trace output and a failure
// when the iterations run out.
func DefaultSettings() *Settings {
	return &Settings{
		CommonSettings:      common.DefaultCommonSettings(),
		ConvergenceSettings: common.DefaultConvergenceSettings(),
		NumericDerivative:   true,
	}
}

func (s *Settings) validate() error {
	if s == nil {
		return errors.New("settings: nil settings")
	}
	if s.CommonSettings == nil || s.ConvergenceSettings == nil {
		return errors.New("settings: common and convergence settings must be set")
	}
	if !(s.Tolerance > 0) || math.IsInf(s.Tolerance, 0) {
		return fmt.Errorf("settings: tolerance must be positive and finite, got %v", s.Tolerance)
	}
	if s.MaximumIterations == 0 || s.MaximumIterations < -1 {
		return fmt.Errorf("settings: maximum iterations must be positive or -1 for no limit, got %d", s.MaximumIterations)
	}
	if s.MaximumFunctionEvaluations == 0 || s.MaximumFunctionEvaluations < -1 {
		return fmt.Errorf("settings: maximum function evaluations must be positive or -1 for no limit, got %d", s.MaximumFunctionEvaluations)
	}
	if s.DerivativeStep < 0 || math.IsNaN(s.DerivativeStep) {
		return fmt.Errorf("settings: derivative step must not be negative, got %v", s.DerivativeStep)
	}
	return nil
}

func (s *Settings) criterion(method common.Criterion) common.Criterion {
	if s.Criterion != common.DefaultCriterion {
		return s.Criterion
	}
	return method
}

// Helper is a helper struct for root finders. Not intended for use by
// callers of the Find functions, but exported to aid others who are building
// root finding algorithms
//
// Implementers should call Init() at the beginning of a run
// and should call Status() to check tolerances. At the end of every iteration should call
// Iterate()
type Helper struct {
	*common.Common
	*common.Convergence

	locCurr  float64
	valCurr  float64
	stepCurr float64

	nonFinite bool
}

// NewHelper creates a new helper and adds itself to the data adders
func NewHelper() *Helper {
	u := &Helper{
		Common:      common.NewCommon(),
		Convergence: common.NewConvergence(),
	}
	u.AddDataAdder(u)
	return u
}

func (u *Helper) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "X", Value: u.locCurr})
	v = append(v, &write.Value{Heading: "F(X)", Value: u.valCurr})
	v = append(v, &write.Value{Heading: "Step", Value: u.stepCurr})
	return v
}

func (u *Helper) Init(ctx context.Context, s *Settings, criterion common.Criterion, function interface{}, initLoc, initVal float64) error {
	u.locCurr = initLoc
	u.valCurr = initVal
	u.stepCurr = math.NaN()
	u.nonFinite = false
	u.Convergence.Init(s.ConvergenceSettings, criterion, initVal)
	return u.Common.Init(ctx, s.CommonSettings, function)
}

// SetEstimate records an estimate found outside of an iteration, such as a
// bracket endpoint that is already a root.
func (u *Helper) SetEstimate(loc, val float64) {
	u.locCurr = loc
	u.valCurr = val
}

func (u *Helper) Iterate(loc, val, step float64, nFunEvals int) error {
	u.locCurr = loc
	u.valCurr = val
	u.stepCurr = step
	if math.IsNaN(val) || math.IsInf(val, 0) {
		u.nonFinite = true
	}
	u.Convergence.Iterate(val, step)
	return u.Common.Iterate(nFunEvals)
}

func (u *Helper) Status() common.Status {
	if u.nonFinite {
		return common.UserFunctionError
	}
	status := u.Convergence.Status()
	if status != common.Continue {
		return status
	}
	return u.Common.Status()
}

func (u *Helper) Result(status common.Status) *Result {
	return &Result{
		CommonResult: u.Common.Result(status),
		Loc:          u.locCurr,
		Value:        u.valCurr,
		Step:         u.stepCurr,
		Lower:        math.NaN(),
		Upper:        math.NaN(),
	}
}

type Result struct {
	*common.CommonResult
	Loc   float64 // Last root estimate. NaN if the run stopped before producing one
	Value float64 // Function value at Loc
	Step  float64 // Change in the estimate during the last iteration, NaN if undefined
	Lower float64 // Final bracket for bracketing methods, NaN otherwise
	Upper float64
}

// Step is one record of the iteration trace
type Step struct {
	Iteration int
	Lower     float64 // Bracket after the iteration, NaN for open methods
	Upper     float64
	Loc       float64
	Value     float64
	Step      float64
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
