package function

import (
	"fmt"
	"strings"

	"github.com/Albert-2002/Optimization/symbolic"
)

// Symbolic is a function given by an expression. Its derivative is
// obtained by symbolic differentiation.
type Symbolic struct {
	expr  symbolic.Expr
	deriv symbolic.Expr
	f, df func(float64) float64
}

// NewSymbolic parses expression as a function of variable.
func NewSymbolic(expression, variable string) (*Symbolic, error) {
	e, err := symbolic.Parse(expression)
	if err != nil {
		return nil, err
	}
	return FromExpr(e, variable)
}

// FromExpr compiles e and its derivative as functions of variable.
func FromExpr(e symbolic.Expr, variable string) (*Symbolic, error) {
	f, err := symbolic.Compile(e, variable)
	if err != nil {
		return nil, err
	}
	d := e.Diff(variable)
	df, err := symbolic.Compile(d, variable)
	if err != nil {
		return nil, err
	}
	return &Symbolic{expr: e, deriv: d, f: f, df: df}, nil
}

func (s *Symbolic) F(x float64) float64     { return s.f(x) }
func (s *Symbolic) Deriv(x float64) float64 { return s.df(x) }

func (s *Symbolic) Expr() symbolic.Expr       { return s.expr }
func (s *Symbolic) Derivative() symbolic.Expr { return s.deriv }

func (s *Symbolic) String() string { return s.expr.String() }

// DerivativeMode selects how New provides a derivative.
type DerivativeMode int

const (
	// SymbolicDerivative differentiates the expression.
	SymbolicDerivative DerivativeMode = iota
	// NumericDerivative uses a central difference.
	NumericDerivative
	// NoDerivative returns a function without a Deriv method.
	NoDerivative
)

func (m DerivativeMode) String() string {
	switch m {
	case NoDerivative:
		return "none"
	case SymbolicDerivative:
		return "symbolic"
	case NumericDerivative:
		return "numeric"
	}
	return fmt.Sprintf("DerivativeMode(%d)", int(m))
}

// ParseDerivativeMode parses the names returned by DerivativeMode.String.
// The empty string selects the symbolic derivative.
func ParseDerivativeMode(s string) (DerivativeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "symbolic":
		return SymbolicDerivative, nil
	case "numeric", "numerical":
		return NumericDerivative, nil
	case "none":
		return NoDerivative, nil
	}
	return NoDerivative, fmt.Errorf("unknown derivative mode %q", s)
}

// Spec describes a function by expression.
type Spec struct {
	Expression string
	Variable   string // defaults to x

	Derivative DerivativeMode
	// DerivativeExpression, when set, is used as the exact derivative and
	// Derivative is ignored.
	DerivativeExpression string
	// Step of the numeric derivative, zero for the formula default.
	Step float64
}

// New builds the function described by spec.
func New(spec Spec) (Function, error) {
	v := spec.Variable
	if v == "" {
		v = "x"
	}
	e, err := symbolic.Parse(spec.Expression)
	if err != nil {
		return nil, err
	}

	if spec.DerivativeExpression != "" {
		d, err := symbolic.Parse(spec.DerivativeExpression)
		if err != nil {
			return nil, fmt.Errorf("derivative: %w", err)
		}
		f, err := symbolic.Compile(e, v)
		if err != nil {
			return nil, err
		}
		df, err := symbolic.Compile(d, v)
		if err != nil {
			return nil, fmt.Errorf("derivative: %w", err)
		}
		return Analytic{Fn: f, Df: df}, nil
	}

	switch spec.Derivative {
	case SymbolicDerivative:
		return FromExpr(e, v)
	case NumericDerivative, NoDerivative:
		f, err := symbolic.Compile(e, v)
		if err != nil {
			return nil, err
		}
		if spec.Derivative == NoDerivative {
			return Func(f), nil
		}
		return Numeric{Fn: f, Step: spec.Step}, nil
	}
	return nil, fmt.Errorf("unknown derivative mode %v", spec.Derivative)
}
