package config

import (
	"fmt"
	"math"
	"strings"
)

// Method names a root finding method.
type Method string

const (
	MethodQuadratic     Method = "quadratic"
	MethodFalsePosition Method = "false-position"
	MethodIllinois      Method = "illinois"
	MethodBisection     Method = "bisection"
	MethodNewton        Method = "newton"
)

var methodAliases = map[string]Method{
	"quadratic":      MethodQuadratic,
	"false-position": MethodFalsePosition,
	"falseposition":  MethodFalsePosition,
	"regula-falsi":   MethodFalsePosition,
	"illinois":       MethodIllinois,
	"bisection":      MethodBisection,
	"bisect":         MethodBisection,
	"newton":         MethodNewton,
	"newton-raphson": MethodNewton,
}

// ParseMethod accepts the method names and a few common aliases.
func ParseMethod(s string) (Method, error) {
	if m, ok := methodAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown method %q", s)
}

// Bracketing reports whether the method needs a bracket.
func (m Method) Bracketing() bool {
	switch m {
	case MethodFalsePosition, MethodIllinois, MethodBisection:
		return true
	}
	return false
}

// Problem is one root finding problem.
type Problem struct {
	Name   string `toml:"name" yaml:"name"`
	Method string `toml:"method" yaml:"method"`

	// Expression is f in the variable Variable, x unless set.
	Expression string `toml:"expression,omitempty" yaml:"expression,omitempty"`
	Variable   string `toml:"variable,omitempty" yaml:"variable,omitempty"`
	// Derivative is symbolic, numeric or none.
	Derivative           string  `toml:"derivative,omitempty" yaml:"derivative,omitempty"`
	DerivativeExpression string  `toml:"derivative_expression,omitempty" yaml:"derivative_expression,omitempty"`
	DerivativeStep       float64 `toml:"derivative_step,omitempty" yaml:"derivative_step,omitempty"`

	// Coefficients a, b, c of ax²+bx+c for the quadratic method.
	Coefficients []float64 `toml:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Bracket      []float64 `toml:"bracket,omitempty" yaml:"bracket,omitempty"`
	X0           *float64  `toml:"x0,omitempty" yaml:"x0,omitempty"`

	Tolerance      float64  `toml:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	MaxIterations  int      `toml:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`
	MaxEvaluations int      `toml:"max_evaluations,omitempty" yaml:"max_evaluations,omitempty"`
	MaxRuntime     Duration `toml:"max_runtime,omitempty" yaml:"max_runtime,omitempty"`
	OnExhausted    string   `toml:"on_exhausted,omitempty" yaml:"on_exhausted,omitempty"`
	Criterion      string   `toml:"criterion,omitempty" yaml:"criterion,omitempty"`
}

// Validate checks that the fields required by the method are present. The
// finders validate numeric settings again when the problem is run.
func (p *Problem) Validate() error {
	m, err := ParseMethod(p.Method)
	if err != nil {
		return fmt.Errorf("problem %q: %w", p.Name, err)
	}
	switch {
	case m == MethodQuadratic:
		if len(p.Coefficients) != 3 {
			return fmt.Errorf("problem %q: quadratic needs 3 coefficients, got %d", p.Name, len(p.Coefficients))
		}
		return nil
	case p.Expression == "":
		return fmt.Errorf("problem %q: expression is required for %s", p.Name, m)
	case m.Bracketing() && len(p.Bracket) != 2:
		return fmt.Errorf("problem %q: %s needs a bracket of 2 values, got %d", p.Name, m, len(p.Bracket))
	case m == MethodNewton && p.X0 == nil:
		return fmt.Errorf("problem %q: newton needs x0", p.Name)
	case p.Tolerance < 0 || math.IsNaN(p.Tolerance):
		return fmt.Errorf("problem %q: tolerance must not be negative", p.Name)
	case p.MaxIterations < -1 || p.MaxEvaluations < -1:
		return fmt.Errorf("problem %q: iteration and evaluation limits must be positive or -1 for no limit", p.Name)
	}
	return nil
}
