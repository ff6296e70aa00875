package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Albert-2002/Optimization/common"
	"github.com/Albert-2002/Optimization/config"
	"github.com/Albert-2002/Optimization/internal/problem"
	"github.com/Albert-2002/Optimization/write"
)

// findOptions holds the flags shared by the iterative commands.
type findOptions struct {
	expr     string
	variable string

	a, b float64
	x0   float64

	tol        float64
	maxIter    int
	criterion  string
	bestEffort bool

	derivative string
	derivExpr  string
	illinois   bool

	trace   bool
	logFile string
}

var findOpts findOptions

var falseposCmd = &cobra.Command{
	Use:   "falsepos",
	Short: "Find a root on a bracket by false position",
	Long: `Finds a root of the expression inside [a, b] with the method of false
position (regula falsi). f(a) and f(b) must have opposite signs.`,
	Example: `  rootfind falsepos --expr "x^2 + 5*x + cos(x)" --a -1 --b 0
  rootfind falsepos --expr "x^3 - 2" --a 0 --b 2 --illinois --trace`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := config.MethodFalsePosition
		if findOpts.illinois {
			m = config.MethodIllinois
		}
		return runFind(cmd, m)
	},
}

var bisectCmd = &cobra.Command{
	Use:   "bisect",
	Short: "Find a root on a bracket by bisection",
	Example: `  rootfind bisect --expr "cos(x) - x" --a 0 --b 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(cmd, config.MethodBisection)
	},
}

var newtonCmd = &cobra.Command{
	Use:   "newton",
	Short: "Find a root by Newton-Raphson iteration",
	Long: `Finds a root of the expression with the Newton-Raphson method starting at
x0. The derivative is obtained symbolically unless --derivative selects a
numeric derivative or --deriv-expr gives it explicitly.`,
	Example: `  rootfind newton --expr "x^2 + 5*x + cos(x)" --x0 0.2
  rootfind newton --expr "x^2 - 2" --x0 1 --deriv-expr "2*x"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(cmd, config.MethodNewton)
	},
}

func init() {
	for _, c := range []*cobra.Command{falseposCmd, bisectCmd, newtonCmd} {
		f := c.Flags()
		f.StringVarP(&findOpts.expr, "expr", "e", "", "Function of the variable, e.g. \"x^2 - 2\"")
		f.StringVar(&findOpts.variable, "var", "x", "Name of the variable")
		f.Float64Var(&findOpts.tol, "tol", 1e-6, "Convergence tolerance")
		f.IntVar(&findOpts.maxIter, "max-iter", 100, "Maximum number of iterations, -1 for no limit")
		f.StringVar(&findOpts.criterion, "criterion", "", "Convergence check: residual, step or residual-or-step")
		f.BoolVar(&findOpts.bestEffort, "best-effort", false, "Report the last estimate instead of failing when iterations run out")
		f.BoolVar(&findOpts.trace, "trace", false, "Print every iteration")
		f.StringVar(&findOpts.logFile, "log", "", "Write every iteration as CSV to `FILE`")
		_ = c.MarkFlagRequired("expr")
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{falseposCmd, bisectCmd} {
		c.Flags().Float64Var(&findOpts.a, "a", 0, "Lower end of the bracket")
		c.Flags().Float64Var(&findOpts.b, "b", 0, "Upper end of the bracket")
		_ = c.MarkFlagRequired("a")
		_ = c.MarkFlagRequired("b")
	}
	falseposCmd.Flags().BoolVar(&findOpts.illinois, "illinois", false, "Use the Illinois modification")

	f := newtonCmd.Flags()
	f.Float64Var(&findOpts.x0, "x0", 0, "Initial guess")
	f.StringVar(&findOpts.derivative, "derivative", "symbolic", "Derivative: symbolic, numeric or none")
	f.StringVar(&findOpts.derivExpr, "deriv-expr", "", "Explicit derivative expression")
	_ = newtonCmd.MarkFlagRequired("x0")
}

func (o *findOptions) problem(m config.Method) config.Problem {
	p := config.Problem{
		Name:                 o.expr,
		Method:               string(m),
		Expression:           o.expr,
		Variable:             o.variable,
		Derivative:           o.derivative,
		DerivativeExpression: o.derivExpr,
		Tolerance:            o.tol,
		MaxIterations:        o.maxIter,
		Criterion:            o.criterion,
		OnExhausted:          common.FailOnExhaustion.String(),
	}
	if o.bestEffort {
		p.OnExhausted = common.BestEffort.String()
	}
	if m.Bracketing() {
		p.Bracket = []float64{o.a, o.b}
	} else {
		x0 := o.x0
		p.X0 = &x0
	}
	return p
}

func runFind(cmd *cobra.Command, m config.Method) error {
	var writers []write.Writer
	if findOpts.trace {
		writers = append(writers, write.Writer{Writer: cmd.OutOrStdout(), T: write.Displayer})
	}
	if findOpts.logFile != "" {
		file, err := os.Create(findOpts.logFile)
		if err != nil {
			return fmt.Errorf("creating log: %w", err)
		}
		defer file.Close()
		writers = append(writers, write.Writer{Writer: file, T: write.Logger})
	}

	r, err := problem.Solve(cmd.Context(), findOpts.problem(m), writers...)
	if err != nil {
		return err
	}
	if findOpts.trace {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	printReport(cmd.OutOrStdout(), r)
	return r.Err
}
