package univariate

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/Albert-2002/Optimization/common"
	"github.com/Albert-2002/Optimization/function"
)

type DerivTestFunction struct {
	Name string
	f    Function
	x0   float64
	root float64
}

var derivTestFunctions = []DerivTestFunction{
	{
		Name: "CubeRoot",
		f:    function.Analytic{Fn: func(x float64) float64 { return x*x*x - 2 }, Df: func(x float64) float64 { return 3 * x * x }},
		x0:   1,
		root: cubeRootTwo,
	},
	{
		Name: "Dottie",
		f:    function.Analytic{Fn: func(x float64) float64 { return math.Cos(x) - x }, Df: func(x float64) float64 { return -math.Sin(x) - 1 }},
		x0:   0,
		root: dottie,
	},
	{
		Name: "DottieNumeric",
		f:    function.Func(func(x float64) float64 { return math.Cos(x) - x }),
		x0:   0,
		root: dottie,
	},
	{
		Name: "Cubic",
		f:    function.Polynomial{-6, 11, -6, 1},
		x0:   1.9,
		root: 2,
	},
	{
		Name: "Sqrt2",
		f:    function.Quadratic(1, 0, -2),
		x0:   1,
		root: math.Sqrt2,
	},
}

func TestNewton(t *testing.T) {
	for _, test := range derivTestFunctions {
		settings := DefaultSettings()
		settings.Tolerance = 1e-10
		res, err := FindDeriv(context.Background(), test.f, test.x0, settings, nil)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.Name, err)
			continue
		}
		if !res.Converged() {
			t.Errorf("%s: not converged, status %v", test.Name, res.Status)
		}
		if !floats.EqualWithinAbsOrRel(res.Loc, test.root, 1e-8, 1e-8) {
			t.Errorf("%s: root mismatch. Want %v, got %v", test.Name, test.root, res.Loc)
		}
		if !math.IsNaN(res.Lower) || !math.IsNaN(res.Upper) {
			t.Errorf("%s: open method reported a bracket", test.Name)
		}
	}
}

func TestNewtonSquare(t *testing.T) {
	// Convergence to the double root of x² is linear: the estimate halves
	// every iteration.
	f := function.Analytic{Fn: func(x float64) float64 { return x * x }, Df: func(x float64) float64 { return 2 * x }}
	res, err := FindDeriv(context.Background(), f, 1, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != common.LocChangeConverged {
		t.Errorf("want LocChangeConverged, got %v", res.Status)
	}
	if math.Abs(res.Loc) > 1e-5 {
		t.Errorf("want a root near 0, got %v", res.Loc)
	}
	if res.Iterations != 20 {
		t.Errorf("want 20 iterations, got %d", res.Iterations)
	}
}

func TestNewtonZeroDerivative(t *testing.T) {
	f := function.Quadratic(1, 0, -1)
	res, err := FindDeriv(context.Background(), f, 0, nil, nil)
	if !errors.Is(err, common.ErrZeroDerivative) {
		t.Errorf("want ErrZeroDerivative, got %v", err)
	}
	if res == nil || res.Status != common.ZeroDerivative {
		t.Fatalf("want status ZeroDerivative, got %+v", res)
	}
	if res.Iterations != 0 || res.Loc != 0 {
		t.Errorf("want the run to stop at x0 = 0, got x = %v after %d iterations", res.Loc, res.Iterations)
	}
}

func TestNewtonNoDerivative(t *testing.T) {
	f := function.Func(func(x float64) float64 { return x - 3 })
	settings := DefaultSettings()
	settings.NumericDerivative = false
	_, err := FindDeriv(context.Background(), f, 0, settings, nil)
	if !errors.Is(err, common.ErrNoDerivative) {
		t.Errorf("want ErrNoDerivative, got %v", err)
	}
}

func TestNewtonEvaluations(t *testing.T) {
	var calls int
	f := function.Func(func(x float64) float64 {
		calls++
		return x*x - 2
	})

	// central difference: two calls for f', one for f
	res, err := FindDeriv(context.Background(), f, 10, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.FunctionEvaluations != calls || calls != 1+3*res.Iterations {
		t.Errorf("numeric derivative: %d calls, reported %d after %d iterations", calls, res.FunctionEvaluations, res.Iterations)
	}

	calls = 0
	a := function.Analytic{Fn: f, Df: func(x float64) float64 {
		calls++
		return 2 * x
	}}
	res, err = FindDeriv(context.Background(), a, 10, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.FunctionEvaluations != calls || calls != 1+2*res.Iterations {
		t.Errorf("analytic derivative: %d calls, reported %d after %d iterations", calls, res.FunctionEvaluations, res.Iterations)
	}

	calls = 0
	settings := DefaultSettings()
	settings.MaximumIterations = -1
	settings.MaximumFunctionEvaluations = 7
	res, err = FindDeriv(context.Background(), f, 10, settings, nil)
	if !errors.Is(err, common.ErrNotConverged) {
		t.Errorf("want ErrNotConverged, got %v", err)
	}
	if res.Status != common.MaximumFunctionEvaluations || res.FunctionEvaluations != 7 || calls != 7 || res.Iterations != 2 {
		t.Errorf("want MaximumFunctionEvaluations after 7 calls and 2 iterations, got %v after %d calls (%d reported), %d iterations",
			res.Status, calls, res.FunctionEvaluations, res.Iterations)
	}
}

func TestNewtonExhausted(t *testing.T) {
	// Newton cycles between 0 and 1 on x³ - 2x + 2
	f := function.Polynomial{2, -2, 0, 1}
	settings := DefaultSettings()
	settings.MaximumIterations = 10
	res, err := FindDeriv(context.Background(), f, 0, settings, nil)
	if !errors.Is(err, common.ErrNotConverged) {
		t.Errorf("want ErrNotConverged, got %v", err)
	}
	if res.Status != common.MaximumIterations || res.Iterations != 10 {
		t.Errorf("want MaximumIterations after 10 iterations, got %v after %d", res.Status, res.Iterations)
	}

	settings.Exhausted = common.BestEffort
	res, err = FindDeriv(context.Background(), f, 0, settings, nil)
	if err != nil {
		t.Fatalf("best effort should not fail: %v", err)
	}
	if res.Converged() {
		t.Errorf("best effort result reported as converged")
	}
}

func TestNewtonExactStart(t *testing.T) {
	f := function.Quadratic(1, 0, -4)
	res, err := FindDeriv(context.Background(), f, 2, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != common.ExactRoot || res.Iterations != 0 || res.Loc != 2 {
		t.Errorf("want ExactRoot at 2 without iterating, got %v at %v after %d", res.Status, res.Loc, res.Iterations)
	}
}

func TestNewtonSteps(t *testing.T) {
	f := cosQuad{}
	settings := DefaultSettings()
	w := NewDerivWrapper(&Newton{})
	if err := w.Init(context.Background(), settings, f, 0.2); err != nil {
		t.Fatal(err)
	}
	var steps []Step
	for s := range w.Steps() {
		steps = append(steps, s)
		if !math.IsNaN(s.Lower) || !math.IsNaN(s.Upper) {
			t.Errorf("iteration %d: open method reported a bracket", s.Iteration)
		}
	}
	if len(steps) == 0 {
		t.Fatal("no steps")
	}
	res, err := w.Result()
	if err != nil {
		t.Fatal(err)
	}
	last := steps[len(steps)-1]
	if last.Loc != res.Loc || last.Iteration != res.Iterations {
		t.Errorf("last step %+v does not match the result %+v", last, res)
	}
	if math.Abs(last.Step) >= settings.Tolerance {
		t.Errorf("last step %v not below the tolerance", last.Step)
	}
}

// The two methods must agree on the root of x² + 5x + cos(x) in (-1, 0).
func TestNewtonAgreesWithFalsePosition(t *testing.T) {
	f := cosQuad{}
	fp, err := FalsePositionRoot(f.F, -1, 0, 1e-6, 100)
	if err != nil {
		t.Fatal(err)
	}

	for name, fn := range map[string]Function{
		"analytic": f,
		"numeric":  function.Func(f.F),
	} {
		res, err := FindDeriv(context.Background(), fn, 0.2, nil, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !floats.EqualWithinAbs(res.Loc, fp, 1e-5) {
			t.Errorf("%s: Newton found %v, false position %v", name, res.Loc, fp)
		}
	}

	x, err := NewtonRoot(f.F, f.Deriv, 0.2, 1e-6, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(x, fp, 1e-5) {
		t.Errorf("NewtonRoot found %v, false position %v", x, fp)
	}
	x, err = NewtonRoot(f.F, nil, 0.2, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(x, fp, 1e-5) {
		t.Errorf("NewtonRoot with a numeric derivative found %v, false position %v", x, fp)
	}
}
