// Package problem turns configured problems into root finder runs.
package problem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Albert-2002/Optimization/common"
	"github.com/Albert-2002/Optimization/config"
	"github.com/Albert-2002/Optimization/function"
	"github.com/Albert-2002/Optimization/univariate"
	"github.com/Albert-2002/Optimization/write"
)

// Report is the outcome of one problem. Exactly one of Roots and Result is
// set for a problem that could be run.
type Report struct {
	ID     uuid.UUID
	Name   string
	Method config.Method

	// Function is the function that was solved.
	Function function.Function

	Roots  *univariate.RootSet // quadratic problems
	Result *univariate.Result  // iterative problems

	// Err is the failure of the run, if any. A failed run may still carry a
	// Result describing where it stopped.
	Err error
}

// Settings converts the termination fields of p into finder settings.
func Settings(p config.Problem) (*univariate.Settings, error) {
	s := univariate.DefaultSettings()
	if p.Tolerance > 0 {
		s.Tolerance = p.Tolerance
	}
	if p.MaxIterations != 0 {
		s.MaximumIterations = p.MaxIterations
	}
	if p.MaxEvaluations != 0 {
		s.MaximumFunctionEvaluations = p.MaxEvaluations
	}
	if p.MaxRuntime.Duration > 0 {
		s.MaximumRuntime = p.MaxRuntime.Duration
	}
	var err error
	if s.Exhausted, err = common.ParseExhaustedPolicy(p.OnExhausted); err != nil {
		return nil, err
	}
	if s.Criterion, err = common.ParseCriterion(p.Criterion); err != nil {
		return nil, err
	}
	s.DerivativeStep = p.DerivativeStep
	return s, nil
}

// Function builds the function of p.
func Function(p config.Problem) (function.Function, error) {
	mode, err := function.ParseDerivativeMode(p.Derivative)
	if err != nil {
		return nil, err
	}
	return function.New(function.Spec{
		Expression:           p.Expression,
		Variable:             p.Variable,
		Derivative:           mode,
		DerivativeExpression: p.DerivativeExpression,
		Step:                 p.DerivativeStep,
	})
}

// Method returns the bracketing or derivative method named by m. One of the
// returned values is nil.
func Method(m config.Method, tol float64) (univariate.BracketMethod, univariate.DerivMethod, error) {
	switch m {
	case config.MethodFalsePosition:
		return &univariate.FalsePosition{}, nil, nil
	case config.MethodIllinois:
		return &univariate.FalsePosition{Illinois: true}, nil, nil
	case config.MethodBisection:
		return univariate.NewBisection(tol), nil, nil
	case config.MethodNewton:
		return nil, &univariate.Newton{}, nil
	}
	return nil, nil, fmt.Errorf("%s is not an iterative method", m)
}

// Solve runs p. The returned error reports a problem that cannot be run at
// all; root finding failures are recorded in Report.Err. Writers, when given,
// receive the iteration trace.
func Solve(ctx context.Context, p config.Problem, writers ...write.Writer) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	m, err := config.ParseMethod(p.Method)
	if err != nil {
		return nil, err
	}
	r := &Report{ID: uuid.New(), Name: p.Name, Method: m}

	if m == config.MethodQuadratic {
		c := p.Coefficients
		roots := univariate.SolveQuadratic(c[0], c[1], c[2])
		r.Function = function.Quadratic(c[0], c[1], c[2])
		r.Roots = &roots
		return r, nil
	}

	settings, err := Settings(p)
	if err != nil {
		return nil, fmt.Errorf("problem %q: %w", p.Name, err)
	}
	if len(writers) > 0 {
		settings.WriteSettings = &write.WriteSettings{DisplayWriters: writers}
	}
	if m.Bracketing() {
		p.Derivative = function.NoDerivative.String()
		p.DerivativeExpression = ""
	}
	f, err := Function(p)
	if err != nil {
		return nil, fmt.Errorf("problem %q: %w", p.Name, err)
	}
	bracket, deriv, err := Method(m, settings.Tolerance)
	if err != nil {
		return nil, err
	}
	r.Function = f

	if bracket != nil {
		r.Result, r.Err = univariate.FindBracketed(ctx, f, p.Bracket[0], p.Bracket[1], settings, bracket)
	} else {
		r.Result, r.Err = univariate.FindDeriv(ctx, f, *p.X0, settings, deriv)
	}
	return r, nil
}

// SolveAll runs every problem of f in order. A problem that cannot be run
// gets a Report with only Err set. Writers are shared by all problems.
func SolveAll(ctx context.Context, f *config.File, writers ...write.Writer) []*Report {
	reports := make([]*Report, 0, len(f.Problems))
	for _, p := range f.Problems {
		r, err := Solve(ctx, p, writers...)
		if err != nil {
			r = &Report{ID: uuid.New(), Name: p.Name, Method: config.Method(p.Method), Err: err}
		}
		reports = append(reports, r)
		if ctx.Err() != nil {
			break
		}
	}
	return reports
}
