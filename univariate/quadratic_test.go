package univariate

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/Albert-2002/Optimization/function"
)

func TestSolveQuadratic(t *testing.T) {
	for _, test := range []struct {
		a, b, c  float64
		kind     RootKind
		roots    []float64
		repeated bool
	}{
		{a: 1, b: -3, c: 2, kind: TwoRoots, roots: []float64{2, 1}},
		{a: 1, b: -5, c: 6, kind: TwoRoots, roots: []float64{3, 2}},
		{a: 1, b: 4, c: 4, kind: TwoRoots, roots: []float64{-2, -2}, repeated: true},
		{a: 1, b: 2, c: 5, kind: NoRealRoot},
		{a: 0, b: 2, c: 4, kind: SingleRoot, roots: []float64{-2}},
		{a: 1, b: 2, c: 1, kind: TwoRoots, roots: []float64{-1, -1}, repeated: true},
		{a: 2, b: 0, c: -8, kind: TwoRoots, roots: []float64{2, -2}},
		{a: -1, b: 0, c: 4, kind: TwoRoots, roots: []float64{-2, 2}},
		{a: 1, b: 0, c: 1, kind: NoRealRoot},
		{a: 1, b: 1, c: 1, kind: NoRealRoot},
		{a: 0, b: 2, c: -4, kind: SingleRoot, roots: []float64{2}},
		{a: 0, b: -4, c: 0, kind: SingleRoot, roots: []float64{0}},
		{a: 0, b: 0, c: 5, kind: NoSolution},
		{a: 0, b: 0, c: 0, kind: InfiniteSolutions},
	} {
		got := SolveQuadratic(test.a, test.b, test.c)
		if got.Kind != test.kind {
			t.Errorf("%v, %v, %v: want %v, got %v", test.a, test.b, test.c, test.kind, got.Kind)
			continue
		}
		if len(got.Roots) != len(test.roots) {
			t.Errorf("%v, %v, %v: want roots %v, got %v", test.a, test.b, test.c, test.roots, got.Roots)
			continue
		}
		for i, r := range test.roots {
			// -0 and 0 are the same root
			if got.Roots[i] != r {
				t.Errorf("%v, %v, %v: root %d: want %v, got %v", test.a, test.b, test.c, i, r, got.Roots[i])
			}
			if v := test.a*r*r + test.b*r + test.c; v != 0 {
				t.Errorf("%v, %v, %v: residual %v at %v", test.a, test.b, test.c, v, r)
			}
		}
		if got.Repeated() != test.repeated {
			t.Errorf("%v, %v, %v: repeated = %v", test.a, test.b, test.c, got.Repeated())
		}
	}
}

func TestSolveQuadraticResidual(t *testing.T) {
	for _, c := range [][3]float64{
		{1, 5, 3},
		{3, -7.5, 0.25},
		{-2, 1, 10},
		{1e-3, 1, -1},
	} {
		got := SolveQuadratic(c[0], c[1], c[2])
		if got.Kind != TwoRoots {
			t.Fatalf("%v: want TwoRoots, got %v", c, got.Kind)
		}
		for _, r := range got.Roots {
			v := c[0]*r*r + c[1]*r + c[2]
			scale := math.Max(math.Abs(c[0]*r*r), math.Max(math.Abs(c[1]*r), math.Abs(c[2])))
			if math.Abs(v) > 1e-9*scale {
				t.Errorf("%v: residual %v at root %v", c, v, r)
			}
		}
	}
}

func TestSolveQuadraticExtremeCoefficients(t *testing.T) {
	for _, test := range []struct {
		a, b, c float64
		roots   []float64
	}{
		// b² overflows
		{a: 1e200, b: 1e200, c: 1, roots: []float64{-1e-200, -1}},
		{a: 1, b: -1e200, c: 1e200, roots: []float64{1e200, 1}},
		// b² ≫ 4ac, the small root cancels without care
		{a: 1, b: 1e9, c: 1, roots: []float64{-1e-9, -1e9}},
		// 4ac underflows
		{a: 1e-200, b: -3e-200, c: 2e-200, roots: []float64{2, 1}},
	} {
		got := SolveQuadratic(test.a, test.b, test.c)
		if got.Kind != TwoRoots {
			t.Errorf("%v, %v, %v: want TwoRoots, got %v", test.a, test.b, test.c, got.Kind)
			continue
		}
		for i, r := range test.roots {
			if !floats.EqualWithinRel(got.Roots[i], r, 1e-12) {
				t.Errorf("%v, %v, %v: root %d: want %v, got %v", test.a, test.b, test.c, i, r, got.Roots[i])
			}
		}
	}
}

func TestRootSetString(t *testing.T) {
	for _, test := range []struct {
		set  RootSet
		want string
	}{
		{SolveQuadratic(1, -3, 2), "(2, 1)"},
		{SolveQuadratic(0, 2, -4), "(2)"},
		{SolveQuadratic(1, 0, 1), "no real root"},
		{SolveQuadratic(0, 0, 1), "no solution"},
		{SolveQuadratic(0, 0, 0), "infinite solutions"},
	} {
		if got := test.set.String(); got != test.want {
			t.Errorf("want %q, got %q", test.want, got)
		}
	}
}

// Quadratics need no special casing: the iterative finders accept them as
// any other function.
func TestQuadraticThroughFinders(t *testing.T) {
	a, b, c := 2.0, -3.0, -5.0 // roots 2.5 and -1
	closed := SolveQuadratic(a, b, c)
	p := function.Quadratic(a, b, c)

	res, err := FindBracketed(context.Background(), p, 0, 4, nil, &FalsePosition{Illinois: true})
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(res.Loc, closed.Roots[0], 1e-6) {
		t.Errorf("false position: want %v, got %v", closed.Roots[0], res.Loc)
	}

	res, err = FindDeriv(context.Background(), p, -3, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(res.Loc, closed.Roots[1], 1e-6) {
		t.Errorf("newton: want %v, got %v", closed.Roots[1], res.Loc)
	}
}
