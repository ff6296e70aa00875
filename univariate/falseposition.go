package univariate

import (
	"math"

	"github.com/Albert-2002/Optimization/common"
	"github.com/Albert-2002/Optimization/write"
)

// FalsePosition finds a root with the method of false position (regula
// falsi). Every iteration intersects the secant through the bracket endpoints
// with the x axis and keeps the half of the bracket where f changes sign.
//
// With Illinois set, the function value of an endpoint that has been kept
// for two consecutive iterations is halved, which avoids the slow one-sided
// convergence of the plain method on convex or concave functions.
type FalsePosition struct {
	Illinois bool

	f Function

	a, fa float64
	b, fb float64

	// side of the bracket replaced by the last iteration: -1 for a, +1 for b
	side int
	prev float64
}

func (fp *FalsePosition) Init(f Function, a, fa, b, fb float64) error {
	fp.f = f
	fp.a, fp.fa = a, fa
	fp.b, fp.fb = b, fb
	fp.side = 0
	fp.prev = math.NaN()
	return nil
}

func (fp *FalsePosition) Iterate() (loc, val, step float64, nFunEvals int, err error) {
	den := fp.fa - fp.fb
	if den == 0 || !isFinite(den) {
		return math.NaN(), math.NaN(), math.NaN(), 0, common.ErrDegenerateInterval
	}
	xr := fp.b - fp.fb*(fp.a-fp.b)/den
	fxr := fp.f.F(xr)

	step = xr - fp.prev
	fp.prev = xr

	// Compare signs directly, the product fa*fxr can underflow to zero.
	if math.Signbit(fp.fa) != math.Signbit(fxr) {
		fp.b, fp.fb = xr, fxr
		if fp.Illinois && fp.side == 1 {
			fp.fa /= 2
		}
		fp.side = 1
	} else {
		fp.a, fp.fa = xr, fxr
		if fp.Illinois && fp.side == -1 {
			fp.fb /= 2
		}
		fp.side = -1
	}
	return xr, fxr, step, 1, nil
}

// Bracket returns the current endpoints. With Illinois set the returned
// function values may be scaled, their signs are exact.
func (fp *FalsePosition) Bracket() (a, fa, b, fb float64) {
	return fp.a, fp.fa, fp.b, fp.fb
}

func (fp *FalsePosition) Criterion() common.Criterion { return common.Residual }

func (fp *FalsePosition) Status() common.Status { return common.Continue }

func (fp *FalsePosition) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "A", Value: fp.a})
	v = append(v, &write.Value{Heading: "B", Value: fp.b})
	return v
}
