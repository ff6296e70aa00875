package univariate

import (
	"math"

	"github.com/Albert-2002/Optimization/function"
)

// cosQuad is x² + 5x + cos(x). It has one root in (-1, 0) and one in (-5, -4).
type cosQuad struct{}

func (cosQuad) F(x float64) float64     { return x*x + 5*x + math.Cos(x) }
func (cosQuad) Deriv(x float64) float64 { return 2*x + 5 - math.Sin(x) }

type BracketTestFunction struct {
	Name string
	f    Function
	a, b float64
	root float64
}

var cubeRootTwo = math.Cbrt(2)

// dottie is the solution of cos(x) = x
const dottie = 0.7390851332151607

var bracketTestFunctions = []BracketTestFunction{
	{
		Name: "CosQuadNearZero",
		f:    cosQuad{},
		a:    -1,
		b:    0,
		root: math.NaN(), // checked against the residual only
	},
	{
		Name: "CosQuadLeft",
		f:    cosQuad{},
		a:    -5,
		b:    -4,
		root: math.NaN(),
	},
	{
		Name: "CubeRoot",
		f:    function.Func(func(x float64) float64 { return x*x*x - 2 }),
		a:    0,
		b:    2,
		root: cubeRootTwo,
	},
	{
		Name: "CubeRootReversed",
		f:    function.Func(func(x float64) float64 { return x*x*x - 2 }),
		a:    2,
		b:    0,
		root: cubeRootTwo,
	},
	{
		Name: "Dottie",
		f:    function.Func(func(x float64) float64 { return math.Cos(x) - x }),
		a:    0,
		b:    1,
		root: dottie,
	},
	{
		Name: "Cubic",
		f:    function.Polynomial{-6, 11, -6, 1}, // (x-1)(x-2)(x-3)
		a:    1.5,
		b:    2.6,
		root: 2,
	},
}

func bracketMethods(tol float64) map[string]func() BracketMethod {
	return map[string]func() BracketMethod{
		"FalsePosition": func() BracketMethod { return &FalsePosition{} },
		"Illinois":      func() BracketMethod { return &FalsePosition{Illinois: true} },
		"Bisection":     func() BracketMethod { return NewBisection(tol) },
	}
}

func signsDiffer(fa, fb float64) bool {
	return fa == 0 || fb == 0 || math.Signbit(fa) != math.Signbit(fb)
}
