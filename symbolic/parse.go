package symbolic

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Parse reads an expression such as "x^2 + 5*x + cos(x)". Both ^ and ** are
// accepted for powers; pi and e are constants.
func Parse(s string) (Expr, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("symbolic: empty expression")
	}
	tree, err := parser.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("symbolic: parsing %q: %w", s, err)
	}
	return convert(tree.Node)
}

// MustParse is like Parse but panics on error. It is meant for expressions
// known at compile time.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func convert(n ast.Node) (Expr, error) {
	switch n := n.(type) {
	case *ast.IntegerNode:
		return Number(float64(n.Value)), nil
	case *ast.FloatNode:
		return Number(n.Value), nil
	case *ast.IdentifierNode:
		if v, ok := constants[n.Value]; ok {
			return num{v: v, name: n.Value}, nil
		}
		return Var(n.Value), nil
	case *ast.UnaryNode:
		x, err := convert(n.Node)
		if err != nil {
			return nil, err
		}
		switch n.Operator {
		case "-":
			return Neg(x), nil
		case "+":
			return x, nil
		}
		return nil, fmt.Errorf("symbolic: unsupported unary operator %q", n.Operator)
	case *ast.BinaryNode:
		l, err := convert(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := convert(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Operator {
		case "+":
			return Add(l, r), nil
		case "-":
			return Sub(l, r), nil
		case "*":
			return Mul(l, r), nil
		case "/":
			return Div(l, r), nil
		case "^", "**":
			return Pow(l, r), nil
		}
		return nil, fmt.Errorf("symbolic: unsupported operator %q", n.Operator)
	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return nil, fmt.Errorf("symbolic: unsupported call target %T", n.Callee)
		}
		return convertCall(callee.Value, n.Arguments)
	case *ast.BuiltinNode:
		return convertCall(n.Name, n.Arguments)
	}
	return nil, fmt.Errorf("symbolic: unsupported expression %T", n)
}

func convertCall(name string, args []ast.Node) (Expr, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("symbolic: %s takes one argument, got %d", name, len(args))
	}
	arg, err := convert(args[0])
	if err != nil {
		return nil, err
	}
	return Call(name, arg)
}
