// Package symbolic holds small expression trees in real variables: they can be
// parsed from text, differentiated symbolically and compiled into plain Go
// functions of one variable.
package symbolic

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Expr is a real-valued expression.
type Expr interface {
	// String formats the expression in the syntax accepted by Parse
	String() string
	// Diff returns the derivative with respect to the variable v
	Diff(v string) Expr

	prec() int
}

const (
	precAdd = iota + 1
	precMul
	precNeg
	precPow
	precAtom
)

type num struct {
	v    float64
	name string // set for named constants
}

type sym struct{ name string }

type neg struct{ x Expr }

type binary struct {
	op   byte // one of + - * / ^
	l, r Expr
}

type call struct {
	name string
	arg  Expr
}

// Number returns the constant v.
func Number(v float64) Expr { return num{v: v} }

// Var returns the variable called name.
func Var(name string) Expr { return sym{name: name} }

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func isNum(e Expr, v float64) bool {
	n, ok := e.(num)
	return ok && n.v == v
}

// Add returns l + r with constant operands folded.
func Add(l, r Expr) Expr {
	ln, lok := l.(num)
	rn, rok := r.(num)
	switch {
	case lok && rok:
		return Number(ln.v + rn.v)
	case isNum(l, 0):
		return r
	case isNum(r, 0):
		return l
	}
	if rneg, ok := r.(neg); ok {
		return Sub(l, rneg.x)
	}
	return binary{op: '+', l: l, r: r}
}

// Sub returns l - r with constant operands folded.
func Sub(l, r Expr) Expr {
	ln, lok := l.(num)
	rn, rok := r.(num)
	switch {
	case lok && rok:
		return Number(ln.v - rn.v)
	case isNum(r, 0):
		return l
	case isNum(l, 0):
		return Neg(r)
	}
	return binary{op: '-', l: l, r: r}
}

// Mul returns l * r with constant operands folded.
func Mul(l, r Expr) Expr {
	ln, lok := l.(num)
	rn, rok := r.(num)
	switch {
	case lok && rok:
		return Number(ln.v * rn.v)
	case isNum(l, 0), isNum(r, 0):
		return Number(0)
	case isNum(l, 1):
		return r
	case isNum(r, 1):
		return l
	case isNum(l, -1):
		return Neg(r)
	case isNum(r, -1):
		return Neg(l)
	}
	return binary{op: '*', l: l, r: r}
}

// Div returns l / r with constant operands folded.
func Div(l, r Expr) Expr {
	ln, lok := l.(num)
	rn, rok := r.(num)
	switch {
	case lok && rok && rn.v != 0:
		return Number(ln.v / rn.v)
	case isNum(l, 0):
		return Number(0)
	case isNum(r, 1):
		return l
	}
	return binary{op: '/', l: l, r: r}
}

// Pow returns base ^ exp with constant operands folded.
func Pow(base, exp Expr) Expr {
	bn, bok := base.(num)
	en, eok := exp.(num)
	switch {
	case bok && eok:
		return Number(math.Pow(bn.v, en.v))
	case isNum(exp, 0):
		return Number(1)
	case isNum(exp, 1):
		return base
	}
	return binary{op: '^', l: base, r: exp}
}

// Neg returns -x.
func Neg(x Expr) Expr {
	switch x := x.(type) {
	case num:
		return Number(-x.v)
	case neg:
		return x.x
	}
	return neg{x: x}
}

// Call applies one of the supported functions to arg.
func Call(name string, arg Expr) (Expr, error) {
	if _, ok := functions[name]; !ok {
		return nil, fmt.Errorf("symbolic: unknown function %q", name)
	}
	if n, ok := arg.(num); ok && n.name == "" {
		return Number(functions[name](n.v)), nil
	}
	return call{name: name, arg: arg}, nil
}

func mustCall(name string, arg Expr) Expr {
	e, err := Call(name, arg)
	if err != nil {
		panic(err)
	}
	return e
}

var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"exp":  math.Exp,
	"ln":   math.Log,
	"log":  math.Log,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
}

func (n num) prec() int {
	if n.v < 0 && n.name == "" {
		return precNeg
	}
	return precAtom
}

func (n num) String() string {
	if n.name != "" {
		return n.name
	}
	return strconv.FormatFloat(n.v, 'g', -1, 64)
}

func (n num) Diff(string) Expr { return Number(0) }

func (s sym) prec() int      { return precAtom }
func (s sym) String() string { return s.name }

func (s sym) Diff(v string) Expr {
	if s.name == v {
		return Number(1)
	}
	return Number(0)
}

func (n neg) prec() int      { return precNeg }
func (n neg) String() string { return "-" + format(n.x, precNeg) }
func (n neg) Diff(v string) Expr {
	return Neg(n.x.Diff(v))
}

func (b binary) prec() int {
	switch b.op {
	case '+', '-':
		return precAdd
	case '*', '/':
		return precMul
	}
	return precPow
}

func (b binary) String() string {
	p := b.prec()
	switch b.op {
	case '-', '/':
		// left associative, the right operand needs parentheses at equal precedence
		return format(b.l, p) + " " + string(b.op) + " " + format(b.r, p+1)
	case '^':
		// right associative
		return format(b.l, p+1) + "^" + format(b.r, p)
	}
	return format(b.l, p) + " " + string(b.op) + " " + format(b.r, p)
}

func (b binary) Diff(v string) Expr {
	dl, dr := b.l.Diff(v), b.r.Diff(v)
	switch b.op {
	case '+':
		return Add(dl, dr)
	case '-':
		return Sub(dl, dr)
	case '*':
		return Add(Mul(dl, b.r), Mul(b.l, dr))
	case '/':
		return Div(Sub(Mul(dl, b.r), Mul(b.l, dr)), Pow(b.r, Number(2)))
	}

	// b.l ^ b.r
	switch {
	case !Depends(b.r, v):
		return Mul(Mul(b.r, Pow(b.l, Sub(b.r, Number(1)))), dl)
	case !Depends(b.l, v):
		return Mul(Mul(b, mustCall("ln", b.l)), dr)
	}
	// d(u^w) = u^w (w' ln u + w u'/u)
	return Mul(b, Add(Mul(dr, mustCall("ln", b.l)), Div(Mul(b.r, dl), b.l)))
}

func (c call) prec() int      { return precAtom }
func (c call) String() string { return c.name + "(" + c.arg.String() + ")" }

func (c call) Diff(v string) Expr {
	u := c.arg
	var outer Expr
	switch c.name {
	case "sin":
		outer = mustCall("cos", u)
	case "cos":
		outer = Neg(mustCall("sin", u))
	case "tan":
		outer = Add(Number(1), Pow(c, Number(2)))
	case "exp":
		outer = c
	case "ln", "log":
		outer = Div(Number(1), u)
	case "sqrt":
		outer = Div(Number(1), Mul(Number(2), c))
	case "abs":
		outer = Div(u, c)
	case "sinh":
		outer = mustCall("cosh", u)
	case "cosh":
		outer = mustCall("sinh", u)
	case "tanh":
		outer = Sub(Number(1), Pow(c, Number(2)))
	case "asin":
		outer = Div(Number(1), mustCall("sqrt", Sub(Number(1), Pow(u, Number(2)))))
	case "acos":
		outer = Neg(Div(Number(1), mustCall("sqrt", Sub(Number(1), Pow(u, Number(2))))))
	case "atan":
		outer = Div(Number(1), Add(Number(1), Pow(u, Number(2))))
	}
	return Mul(outer, u.Diff(v))
}

func format(e Expr, minPrec int) string {
	if e.prec() < minPrec {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// Depends reports whether e contains the variable v.
func Depends(e Expr, v string) bool {
	_, ok := freeSymbols(e, map[string]struct{}{})[v]
	return ok
}

// Variables returns the sorted names of the variables in e.
func Variables(e Expr) []string {
	set := freeSymbols(e, map[string]struct{}{})
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func freeSymbols(e Expr, set map[string]struct{}) map[string]struct{} {
	switch e := e.(type) {
	case sym:
		set[e.name] = struct{}{}
	case neg:
		freeSymbols(e.x, set)
	case binary:
		freeSymbols(e.l, set)
		freeSymbols(e.r, set)
	case call:
		freeSymbols(e.arg, set)
	}
	return set
}

// Compile turns e into a function of the variable v. Any other variable in e
// is an error.
func Compile(e Expr, v string) (func(float64) float64, error) {
	for _, name := range Variables(e) {
		if name != v {
			return nil, fmt.Errorf("symbolic: unbound variable %q in %s", name, e)
		}
	}
	return compile(e), nil
}

func compile(e Expr) func(float64) float64 {
	switch e := e.(type) {
	case num:
		c := e.v
		return func(float64) float64 { return c }
	case sym:
		return func(x float64) float64 { return x }
	case neg:
		f := compile(e.x)
		return func(x float64) float64 { return -f(x) }
	case call:
		fn, arg := functions[e.name], compile(e.arg)
		return func(x float64) float64 { return fn(arg(x)) }
	case binary:
		l, r := compile(e.l), compile(e.r)
		switch e.op {
		case '+':
			return func(x float64) float64 { return l(x) + r(x) }
		case '-':
			return func(x float64) float64 { return l(x) - r(x) }
		case '*':
			return func(x float64) float64 { return l(x) * r(x) }
		case '/':
			return func(x float64) float64 { return l(x) / r(x) }
		}
		if n, ok := e.r.(num); ok && n.v == 2 {
			return func(x float64) float64 { v := l(x); return v * v }
		}
		return func(x float64) float64 { return math.Pow(l(x), r(x)) }
	}
	panic(fmt.Sprintf("symbolic: unknown expression type %T", e))
}
