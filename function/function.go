// Package function turns analytic or symbolic descriptions of a scalar
// function into values usable by the root finders in univariate. Every type
// has an F method; those that can also provide a derivative have a Deriv
// method.
package function

import (
	"gonum.org/v1/gonum/diff/fd"
)

// Function is a scalar function of one variable.
type Function interface {
	F(x float64) float64
}

// Func adapts a plain function. It has no derivative.
type Func func(float64) float64

func (f Func) F(x float64) float64 { return f(x) }

// Analytic pairs a function with its exact derivative.
type Analytic struct {
	Fn func(float64) float64
	Df func(float64) float64
}

func (a Analytic) F(x float64) float64     { return a.Fn(x) }
func (a Analytic) Deriv(x float64) float64 { return a.Df(x) }

// Numeric estimates the derivative of Fn by finite differences. The zero
// Formula is the central difference; a zero Step uses the step of the
// formula.
type Numeric struct {
	Fn      func(float64) float64
	Step    float64
	Formula fd.Formula
}

func (n Numeric) F(x float64) float64 { return n.Fn(x) }

func (n Numeric) Deriv(x float64) float64 {
	return fd.Derivative(n.Fn, x, &fd.Settings{
		Formula: n.formula(),
		Step:    n.Step,
	})
}

// Evaluations returns the number of calls to Fn made by one Deriv.
func (n Numeric) Evaluations() int {
	return len(n.formula().Stencil)
}

func (n Numeric) formula() fd.Formula {
	if n.Formula.Stencil == nil {
		return fd.Central
	}
	return n.Formula
}

// Polynomial holds coefficients from the constant term up, so
// Polynomial{c, b, a} is c + bx + ax².
type Polynomial []float64

// Quadratic returns ax² + bx + c.
func Quadratic(a, b, c float64) Polynomial {
	return Polynomial{c, b, a}
}

// Degree returns the index of the highest non-zero coefficient, or -1 for
// the zero polynomial.
func (p Polynomial) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

// F evaluates the polynomial with Horner's scheme.
func (p Polynomial) F(x float64) float64 {
	var v float64
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + p[i]
	}
	return v
}

func (p Polynomial) Deriv(x float64) float64 {
	var v float64
	for i := len(p) - 1; i >= 1; i-- {
		v = v*x + float64(i)*p[i]
	}
	return v
}
