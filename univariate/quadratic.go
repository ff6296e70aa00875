package univariate

import (
	"fmt"
	"math"
)

// RootKind classifies the solution set of ax²+bx+c = 0
type RootKind int

const (
	TwoRoots          RootKind = iota // a != 0 and b²-4ac >= 0, possibly a repeated root
	SingleRoot                        // a == 0, b != 0: the linear equation bx+c = 0
	NoRealRoot                        // a != 0 and b²-4ac < 0
	NoSolution                        // a == 0, b == 0, c != 0
	InfiniteSolutions                 // a == b == c == 0
)

func (k RootKind) String() string {
	switch k {
	case TwoRoots:
		return "TwoRoots"
	case SingleRoot:
		return "SingleRoot"
	case NoRealRoot:
		return "NoRealRoot"
	case NoSolution:
		return "NoSolution"
	case InfiniteSolutions:
		return "InfiniteSolutions"
	}
	return fmt.Sprintf("RootKind(%d)", int(k))
}

// RootSet is the result of SolveQuadratic. Roots has two entries for
// TwoRoots, one for SingleRoot and none otherwise.
type RootSet struct {
	Kind  RootKind
	Roots []float64
}

// Repeated reports whether a pair of roots coincides.
func (r RootSet) Repeated() bool {
	return r.Kind == TwoRoots && r.Roots[0] == r.Roots[1]
}

func (r RootSet) String() string {
	switch r.Kind {
	case TwoRoots:
		return fmt.Sprintf("(%v, %v)", r.Roots[0], r.Roots[1])
	case SingleRoot:
		return fmt.Sprintf("(%v)", r.Roots[0])
	case NoRealRoot:
		return "no real root"
	case NoSolution:
		return "no solution"
	case InfiniteSolutions:
		return "infinite solutions"
	}
	return r.Kind.String()
}

// SolveQuadratic solves ax²+bx+c = 0 in closed form. With a != 0 and a
// non-negative discriminant both roots are returned, (-b+√D)/2a first, even
// when they are equal. Complex roots are reported as NoRealRoot.
//
// The coefficients are scaled by a power of two before forming the
// discriminant, and the root of smaller magnitude is taken from the product
// of the roots, so large coefficients do not overflow and b² ≫ |4ac| does not
// cancel.
func SolveQuadratic(a, b, c float64) RootSet {
	if a == 0 {
		switch {
		case b != 0:
			return RootSet{Kind: SingleRoot, Roots: []float64{-c / b}}
		case c != 0:
			return RootSet{Kind: NoSolution}
		default:
			return RootSet{Kind: InfiniteSolutions}
		}
	}

	_, e := math.Frexp(math.Max(math.Abs(a), math.Max(math.Abs(b), math.Abs(c))))
	a, b, c = math.Ldexp(a, -e), math.Ldexp(b, -e), math.Ldexp(c, -e)

	d := b*b - 4*a*c
	if d < 0 {
		return RootSet{Kind: NoRealRoot}
	}
	if d == 0 {
		x := -b / (2 * a)
		return RootSet{Kind: TwoRoots, Roots: []float64{x, x}}
	}
	sd := math.Sqrt(d)
	// q = -(b + sign(b)√D)/2 has no cancellation; the roots are q/a and c/q
	if b < 0 {
		q := (-b + sd) / 2
		return RootSet{Kind: TwoRoots, Roots: []float64{q / a, c / q}}
	}
	q := -(b + sd) / 2
	return RootSet{Kind: TwoRoots, Roots: []float64{c / q, q / a}}
}
