package univariate

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/Albert-2002/Optimization/common"
	"github.com/Albert-2002/Optimization/function"
	"github.com/Albert-2002/Optimization/write"
)

// BracketMethod represents a root finder that keeps a sign-changing bracket
type BracketMethod interface {
	// Init is only called with a valid bracket: f(a) and f(b) are finite,
	// non-zero and of opposite signs.
	Init(f Function, a, fa, b, fb float64) error
	// Iterate returns the new estimate, the function value there, and the
	// change from the previous estimate (NaN on the first iteration).
	Iterate() (loc, val, step float64, nFunEvals int, err error)
	// Bracket returns the current endpoints and their function values
	Bracket() (a, fa, b, fb float64)
	// Criterion is the convergence check used when Settings does not set one
	Criterion() common.Criterion
	Status() common.Status
}

// DerivMethod represents a root finder that uses the derivative of the function
type DerivMethod interface {
	Init(f FuncDeriver, x0, f0 float64) error
	Iterate() (loc, val, step float64, nFunEvals int, err error)
	Criterion() common.Criterion
	Status() common.Status
}

// run holds what is shared by the bracketing and derivative wrappers: the
// helper, a terminal status decided outside of the convergence checks, and
// the exhaustion policy.
type run struct {
	helper   *Helper
	status   common.Status
	err      error
	settings *Settings
}

// iterated records the outcome of one method iteration. Root finding
// failures become the run status; anything else is returned.
func (r *run) iterated(loc, val, step float64, nFunEvals int, err error) error {
	if err != nil {
		if s := common.StatusOf(err); s != common.Continue {
			r.status = s
			r.helper.AddEvaluations(nFunEvals)
			return nil
		}
		return fmt.Errorf("error iterating root finder: %w", err)
	}
	return r.helper.Iterate(loc, val, step, nFunEvals)
}

// finish applies the exhaustion policy. Converged runs and best-effort runs
// that ran out of budget return a nil error; every other terminal status is
// returned as a *common.Error.
func (r *run) finish(res *Result) (*Result, error) {
	if r.err != nil {
		return res, r.err
	}
	status := res.Status
	switch {
	case status == common.Continue, status.Converged():
		return res, nil
	case status.Exhausted() && r.settings.Exhausted == common.BestEffort:
		return res, nil
	}
	return res, &common.Error{Status: status, Iterations: res.Iterations, Loc: res.Loc}
}

// BracketWrapper is a convenience wrapper around a bracketing algorithm that
// allows more fine-grained control over the progress of a run. See
// FindBracketed for example usage
type BracketWrapper struct {
	method BracketMethod
	run
}

func NewBracketWrapper(method BracketMethod) *BracketWrapper {
	w := &BracketWrapper{
		method: method,
		run:    run{helper: NewHelper()},
	}
	if adder, ok := method.(write.DataAdder); ok {
		w.helper.AddDataAdder(adder)
	}
	return w
}

// Init evaluates the bracket endpoints and prepares the method. An invalid
// bracket is not an error of Init: the run ends with InvalidBracket before
// the first iteration.
func (g *BracketWrapper) Init(ctx context.Context, settings *Settings, f Function, a, b float64) error {
	if f == nil {
		return errors.New("function is nil")
	}
	if err := settings.validate(); err != nil {
		return err
	}
	if !isFinite(a) || !isFinite(b) {
		return fmt.Errorf("bracket endpoints must be finite, got [%v, %v]", a, b)
	}
	g.settings = settings
	g.status = common.Continue
	g.err = nil

	criterion := settings.criterion(g.method.Criterion())
	if err := g.helper.Init(ctx, settings, criterion, f, math.NaN(), math.NaN()); err != nil {
		return err
	}

	fa := f.F(a)
	fb := f.F(b)
	g.helper.AddEvaluations(2)

	switch {
	case !isFinite(fa) || !isFinite(fb):
		g.status = common.UserFunctionError
	case fa == 0:
		g.helper.SetEstimate(a, fa)
		g.status = common.ExactRoot
	case fb == 0:
		g.helper.SetEstimate(b, fb)
		g.status = common.ExactRoot
	case math.Signbit(fa) == math.Signbit(fb):
		g.status = common.InvalidBracket
	default:
		return g.method.Init(f, a, fa, b, fb)
	}
	return nil
}

func (g *BracketWrapper) Status() common.Status {
	if g.status != common.Continue {
		return g.status
	}
	if g.helper.nonFinite {
		return common.UserFunctionError
	}
	return common.CheckStatus(g.method, g.helper)
}

// Iterate performs one iteration of the method
func (g *BracketWrapper) Iterate() (Step, error) {
	loc, val, step, nFunEvals, err := g.method.Iterate()
	if err := g.iterated(loc, val, step, nFunEvals, err); err != nil {
		return Step{}, err
	}
	lo, hi := g.bounds()
	return Step{
		Iteration: g.helper.Iterations(),
		Lower:     lo,
		Upper:     hi,
		Loc:       loc,
		Value:     val,
		Step:      step,
	}, nil
}

// Steps iterates until the run ends, yielding one record per iteration.
// The sequence can only be consumed once per Init.
func (g *BracketWrapper) Steps() iter.Seq[Step] {
	return steps(&g.run, g.Status, g.Iterate)
}

// Bracket returns the current bracket endpoints and their function values
func (g *BracketWrapper) Bracket() (a, fa, b, fb float64) {
	return g.method.Bracket()
}

func (g *BracketWrapper) bounds() (lo, hi float64) {
	a, _, b, _ := g.method.Bracket()
	return math.Min(a, b), math.Max(a, b)
}

func (g *BracketWrapper) Result() (*Result, error) {
	res := g.helper.Result(g.Status())
	if g.helper.Iterations() > 0 {
		res.Lower, res.Upper = g.bounds()
	}
	return g.finish(res)
}

// FindBracketed finds a root of f inside the bracket [a, b], where f(a) and
// f(b) must have opposite signs. A nil method uses FalsePosition and nil
// settings use DefaultSettings.
//
// The returned Result is non-nil whenever initialization succeeds, including
// failed runs, so callers can inspect where the run stopped.
func FindBracketed(ctx context.Context, f Function, a, b float64, settings *Settings, method BracketMethod) (*Result, error) {
	if method == nil {
		method = &FalsePosition{}
	}
	if settings == nil {
		settings = DefaultSettings()
	}

	wrapper := NewBracketWrapper(method)
	if err := wrapper.Init(ctx, settings, f, a, b); err != nil {
		return nil, fmt.Errorf("error initializing: %w", err)
	}
	for wrapper.Status() == common.Continue {
		if _, err := wrapper.Iterate(); err != nil {
			return nil, err
		}
	}
	return wrapper.Result()
}

// DerivWrapper is a convenience wrapper around a derivative-based algorithm
// that allows more fine-grained control over the progress of a run. See
// FindDeriv for example usage
type DerivWrapper struct {
	method DerivMethod
	run
}

func NewDerivWrapper(method DerivMethod) *DerivWrapper {
	w := &DerivWrapper{
		method: method,
		run:    run{helper: NewHelper()},
	}
	if adder, ok := method.(write.DataAdder); ok {
		w.helper.AddDataAdder(adder)
	}
	return w
}

// Init evaluates f at x0 and prepares the method. If f does not implement
// Deriver, a central difference derivative is used when
// settings.NumericDerivative is set, and ErrNoDerivative is returned otherwise.
func (g *DerivWrapper) Init(ctx context.Context, settings *Settings, f Function, x0 float64) error {
	if f == nil {
		return errors.New("function is nil")
	}
	if err := settings.validate(); err != nil {
		return err
	}
	if !isFinite(x0) {
		return fmt.Errorf("initial guess must be finite, got %v", x0)
	}
	g.settings = settings
	g.status = common.Continue
	g.err = nil

	fd, ok := f.(FuncDeriver)
	if !ok {
		if !settings.NumericDerivative {
			return common.ErrNoDerivative
		}
		fd = function.Numeric{Fn: f.F, Step: settings.DerivativeStep}
	}

	criterion := settings.criterion(g.method.Criterion())
	if err := g.helper.Init(ctx, settings, criterion, f, x0, math.NaN()); err != nil {
		return err
	}

	f0 := f.F(x0)
	g.helper.AddEvaluations(1)
	g.helper.SetEstimate(x0, f0)

	switch {
	case !isFinite(f0):
		g.status = common.UserFunctionError
	case f0 == 0:
		g.status = common.ExactRoot
	default:
		return g.method.Init(fd, x0, f0)
	}
	return nil
}

func (g *DerivWrapper) Status() common.Status {
	if g.status != common.Continue {
		return g.status
	}
	if g.helper.nonFinite {
		return common.UserFunctionError
	}
	return common.CheckStatus(g.method, g.helper)
}

func (g *DerivWrapper) Iterate() (Step, error) {
	loc, val, step, nFunEvals, err := g.method.Iterate()
	if err := g.iterated(loc, val, step, nFunEvals, err); err != nil {
		return Step{}, err
	}
	return Step{
		Iteration: g.helper.Iterations(),
		Lower:     math.NaN(),
		Upper:     math.NaN(),
		Loc:       loc,
		Value:     val,
		Step:      step,
	}, nil
}

// Steps iterates until the run ends, yielding one record per iteration.
// The sequence can only be consumed once per Init.
func (g *DerivWrapper) Steps() iter.Seq[Step] {
	return steps(&g.run, g.Status, g.Iterate)
}

func (g *DerivWrapper) Result() (*Result, error) {
	return g.finish(g.helper.Result(g.Status()))
}

// FindDeriv finds a root of f starting from x0. A nil method uses Newton and
// nil settings use DefaultSettings.
func FindDeriv(ctx context.Context, f Function, x0 float64, settings *Settings, method DerivMethod) (*Result, error) {
	if method == nil {
		method = &Newton{}
	}
	if settings == nil {
		settings = DefaultSettings()
	}

	wrapper := NewDerivWrapper(method)
	if err := wrapper.Init(ctx, settings, f, x0); err != nil {
		return nil, fmt.Errorf("error initializing: %w", err)
	}
	for wrapper.Status() == common.Continue {
		if _, err := wrapper.Iterate(); err != nil {
			return nil, err
		}
	}
	return wrapper.Result()
}

func steps(r *run, status func() common.Status, iterate func() (Step, error)) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for status() == common.Continue {
			s, err := iterate()
			if err != nil {
				r.err = err
				return
			}
			if r.status != common.Continue {
				// the method failed; there is no new estimate to report
				return
			}
			if !yield(s) {
				return
			}
		}
	}
}

// FalsePositionRoot finds a root of f in [a, b] by the method of false
// position. tol and maxIter fall back to 1e-6 and 100 when not positive.
// Running out of iterations is reported as an error wrapping
// common.ErrNotConverged.
func FalsePositionRoot(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	res, err := FindBracketed(context.Background(), function.Func(f), a, b, simpleSettings(tol, maxIter), &FalsePosition{})
	if err != nil {
		return math.NaN(), err
	}
	return res.Loc, nil
}

// NewtonRoot finds a root of f with the Newton-Raphson method starting at x0.
// A nil df uses a central difference derivative.
func NewtonRoot(f, df func(float64) float64, x0, tol float64, maxIter int) (float64, error) {
	var fn Function = function.Func(f)
	if df != nil {
		fn = function.Analytic{Fn: f, Df: df}
	}
	res, err := FindDeriv(context.Background(), fn, x0, simpleSettings(tol, maxIter), &Newton{})
	if err != nil {
		return math.NaN(), err
	}
	return res.Loc, nil
}

func simpleSettings(tol float64, maxIter int) *Settings {
	s := DefaultSettings()
	if tol > 0 {
		s.Tolerance = tol
	}
	if maxIter > 0 {
		s.MaximumIterations = maxIter
	}
	return s
}
