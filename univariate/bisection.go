package univariate

import (
	"math"

	"github.com/Albert-2002/Optimization/common"
	"github.com/Albert-2002/Optimization/write"
	"gonum.org/v1/gonum/floats"
)

// Bisection halves the bracket at every iteration, keeping the half where
// f changes sign. It converges on the residual like FalsePosition, and in
// addition stops with BoundsConverged once the bracket is narrower than Tol
// or cannot be split any further in floating point.
type Bisection struct {
	Tol float64 // Bracket width at which to stop. Zero only stops on collapse

	f Function

	a, fa float64
	b, fb float64

	prev      float64
	collapsed bool
}

func NewBisection(tol float64) *Bisection {
	return &Bisection{Tol: tol}
}

func (b *Bisection) Init(f Function, lo, flo, hi, fhi float64) error {
	b.f = f
	b.a, b.fa = lo, flo
	b.b, b.fb = hi, fhi
	b.prev = math.NaN()
	b.collapsed = false
	return nil
}

func (b *Bisection) Iterate() (loc, val, step float64, nFunEvals int, err error) {
	m := b.a + (b.b-b.a)/2
	if m == b.a || m == b.b {
		// a and b are successive floating point numbers
		b.collapsed = true
	}
	fm := b.f.F(m)

	step = m - b.prev
	b.prev = m

	if math.Signbit(b.fa) != math.Signbit(fm) {
		b.b, b.fb = m, fm
	} else {
		b.a, b.fa = m, fm
	}
	return m, fm, step, 1, nil
}

func (b *Bisection) Bracket() (lo, flo, hi, fhi float64) {
	return b.a, b.fa, b.b, b.fb
}

func (b *Bisection) Criterion() common.Criterion { return common.Residual }

func (b *Bisection) Status() common.Status {
	if math.IsNaN(b.prev) {
		return common.Continue
	}
	if b.collapsed {
		return common.BoundsConverged
	}
	if b.Tol > 0 && floats.EqualWithinAbsOrRel(b.a, b.b, b.Tol, b.Tol) {
		return common.BoundsConverged
	}
	return common.Continue
}

func (b *Bisection) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "A", Value: b.a})
	v = append(v, &write.Value{Heading: "B", Value: b.b})
	return v
}
