package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Albert-2002/Optimization/function"
	"github.com/Albert-2002/Optimization/internal/problem"
	"github.com/Albert-2002/Optimization/univariate"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(14)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

func render(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

func field(w io.Writer, label string, value interface{}) {
	if noColor {
		fmt.Fprintf(w, "  %-14s%v\n", label, value)
		return
	}
	fmt.Fprintf(w, "  %s%v\n", labelStyle.Render(label), value)
}

// printReport writes one problem report. The error of a failed run is left
// to the caller.
func printReport(w io.Writer, r *problem.Report) {
	fmt.Fprintf(w, "%s %s %s\n",
		render(titleStyle, r.Name),
		render(mutedStyle, string(r.Method)),
		render(mutedStyle, r.ID.String()))

	printFunction(w, r.Function)
	switch {
	case r.Roots != nil:
		printRoots(w, r.Roots)
	case r.Result != nil:
		printResult(w, r.Result)
	}
}

func printFunction(w io.Writer, f function.Function) {
	switch f := f.(type) {
	case *function.Symbolic:
		field(w, "f", f.Expr())
		field(w, "f'", f.Derivative())
	case function.Polynomial:
		field(w, "degree", f.Degree())
	}
}

func printRoots(w io.Writer, roots *univariate.RootSet) {
	field(w, "kind", roots.Kind)
	switch roots.Kind {
	case univariate.TwoRoots, univariate.SingleRoot:
		vals := make([]string, len(roots.Roots))
		for i, x := range roots.Roots {
			vals[i] = fmt.Sprintf("%.12g", x)
		}
		field(w, "roots", render(successStyle, strings.Join(vals, ", ")))
		if roots.Repeated() {
			field(w, "", render(mutedStyle, "repeated root"))
		}
	default:
		field(w, "roots", render(warningStyle, roots.String()))
	}
}

func printResult(w io.Writer, res *univariate.Result) {
	status := render(successStyle, res.Status.String())
	if !res.Converged() {
		status = render(warningStyle, res.Status.String())
	}
	field(w, "status", status)
	field(w, "root", fmt.Sprintf("%.12g", res.Loc))
	field(w, "f(root)", fmt.Sprintf("%.3e", res.Value))
	if !math.IsNaN(res.Lower) {
		field(w, "bracket", fmt.Sprintf("[%.12g, %.12g]", res.Lower, res.Upper))
	}
	field(w, "iterations", res.Iterations)
	field(w, "evaluations", res.FunctionEvaluations)
	field(w, "runtime", res.Runtime)
}
