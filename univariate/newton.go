package univariate

import (
	"math"

	"github.com/Albert-2002/Optimization/common"
)

// Newton finds a root with the Newton-Raphson method,
//
//	x_{n+1} = x_n - f(x_n)/f'(x_n)
//
// There is no bracket: the method may converge to a root other than the
// nearest one, diverge or cycle, in which case the run ends when the
// iterations run out.
//
// By default the run has converged when the step |x_{n+1} - x_n| is below
// the tolerance.
type Newton struct {
	f FuncDeriver
	// function evaluations made by one call to Deriv
	derivEvals int

	x  float64
	fx float64
}

func (n *Newton) Init(f FuncDeriver, x0, f0 float64) error {
	n.f = f
	n.derivEvals = 1
	if c, ok := f.(evaluationCounter); ok {
		n.derivEvals = c.Evaluations()
	}
	n.x = x0
	n.fx = f0
	return nil
}

func (n *Newton) Iterate() (loc, val, step float64, nFunEvals int, err error) {
	d := n.f.Deriv(n.x)
	switch {
	case d == 0:
		return n.x, n.fx, math.NaN(), n.derivEvals, common.ErrZeroDerivative
	case !isFinite(d):
		return n.x, n.fx, math.NaN(), n.derivEvals, common.ErrUserFunction
	}
	x := n.x - n.fx/d
	fx := n.f.F(x)

	step = x - n.x
	n.x, n.fx = x, fx
	return x, fx, step, n.derivEvals + 1, nil
}

func (n *Newton) Criterion() common.Criterion { return common.Step }

func (n *Newton) Status() common.Status { return common.Continue }

// evaluationCounter is implemented by derivatives computed from function
// values, such as function.Numeric.
type evaluationCounter interface {
	Evaluations() int
}
