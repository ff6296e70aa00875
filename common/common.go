package common

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Albert-2002/Optimization/write"
)

type Initer interface {
	Init()
}

// FunctionWrapper forwards optional hooks implemented by the user function.
//
// If the function is an Initer it is called once at the start of every run.
// If the function is a Statuser it may stop the run early.
// If the function is a write.DataAdder its values are added to the trace.
type FunctionWrapper struct {
	fun interface{}
}

func (o *FunctionWrapper) Init(function interface{}) {
	o.fun = function
	if initer, ok := function.(Initer); ok {
		initer.Init()
	}
}

func (o *FunctionWrapper) Status() Status {
	if statuser, ok := o.fun.(Statuser); ok {
		return statuser.Status()
	}
	return Continue
}

func (o *FunctionWrapper) AppendWriteData(v []*write.Value) []*write.Value {
	if dataWriter, ok := o.fun.(write.DataAdder); ok {
		return dataWriter.AppendWriteData(v)
	}
	return v
}

// Criterion selects which quantity decides convergence.
type Criterion int

const (
	DefaultCriterion Criterion = iota // let the method choose
	Residual                          // |f(x)| < tol
	Step                              // |x_{n+1} - x_n| < tol
	ResidualOrStep                    // either of the above
)

var criterionNames = map[Criterion]string{
	DefaultCriterion: "default",
	Residual:         "residual",
	Step:             "step",
	ResidualOrStep:   "residual-or-step",
}

func (c Criterion) String() string {
	if s, ok := criterionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Criterion(%d)", int(c))
}

// ParseCriterion parses the names returned by Criterion.String. The empty
// string is the default criterion.
func ParseCriterion(s string) (Criterion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultCriterion, nil
	}
	for c, name := range criterionNames {
		if name == s {
			return c, nil
		}
	}
	return DefaultCriterion, fmt.Errorf("unknown convergence criterion %q", s)
}

// ExhaustedPolicy decides what a run that used up its iteration, evaluation
// or runtime budget returns.
type ExhaustedPolicy int

const (
	// FailOnExhaustion returns ErrNotConverged.
	FailOnExhaustion ExhaustedPolicy = iota
	// BestEffort returns the last estimate without an error. The result
	// status still reports the exhausted budget.
	BestEffort
)

func (p ExhaustedPolicy) String() string {
	switch p {
	case FailOnExhaustion:
		return "fail"
	case BestEffort:
		return "best-effort"
	}
	return fmt.Sprintf("ExhaustedPolicy(%d)", int(p))
}

func ParseExhaustedPolicy(s string) (ExhaustedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return FailOnExhaustion, nil
	case "best-effort", "besteffort":
		return BestEffort, nil
	}
	return FailOnExhaustion, fmt.Errorf("unknown exhaustion policy %q", s)
}

// ConvergenceSettings holds the stopping tolerance.
type ConvergenceSettings struct {
	Tolerance float64   // Absolute tolerance, shared by the residual and step checks
	Criterion Criterion // Which checks are active. DefaultCriterion defers to the method
}

func DefaultConvergenceSettings() *ConvergenceSettings {
	return &ConvergenceSettings{
		Tolerance: 1e-6,
		Criterion: DefaultCriterion,
	}
}

// Convergence tracks the residual and step tolerances of a single root estimate
type Convergence struct {
	resid *Toler
	step  *Toler
}

func NewConvergence() *Convergence {
	return &Convergence{
		resid: &Toler{},
		step:  &Toler{},
	}
}

// Init activates the tolerances selected by criterion, which must already be
// resolved to a concrete criterion.
func (s *Convergence) Init(settings *ConvergenceSettings, criterion Criterion, initResid float64) {
	residTol, stepTol := math.NaN(), math.NaN()
	switch criterion {
	case Residual:
		residTol = settings.Tolerance
	case Step:
		stepTol = settings.Tolerance
	case ResidualOrStep:
		residTol = settings.Tolerance
		stepTol = settings.Tolerance
	}
	s.resid.Init(residTol, initResid)
	s.step.Init(stepTol, math.Inf(1))
}

// Iterate records the absolute residual and step of the latest iteration.
// Bracketing methods pass a NaN step.
func (s *Convergence) Iterate(resid, step float64) {
	s.resid.Add(math.Abs(resid))
	s.step.Add(math.Abs(step))
}

func (s *Convergence) Status() Status {
	if s.resid.seen && s.resid.Recent() == 0 {
		return ExactRoot
	}
	if s.resid.Converged() {
		return FunctionConverged
	}
	if s.step.Converged() {
		return LocChangeConverged
	}
	return Continue
}

// CommonSettings is a set of options available to all root finders
type CommonSettings struct {
	MaximumIterations          int             // Maximum number of iterations. -1 means no maximum
	MaximumFunctionEvaluations int             // Maximum number of function evaluations. -1 means no maximum
	MaximumRuntime             time.Duration   // Maximum wall clock time. Negative means no maximum
	Exhausted                  ExhaustedPolicy // What to return when one of the budgets runs out
	*write.WriteSettings
}

// DefaultCommonSettings returns the default settings for the common structure
func DefaultCommonSettings() *CommonSettings {
	return &CommonSettings{
		MaximumIterations:          100,
		MaximumFunctionEvaluations: -1,
		MaximumRuntime:             -1,
		Exhausted:                  FailOnExhaustion,
		WriteSettings:              write.DefaultWriteSettings(),
	}
}

// CommonResult is a list of results from the common structure
type CommonResult struct {
	Iterations          int           // Total number of iterations taken by the finder
	FunctionEvaluations int           // Total number of function evaluations
	Runtime             time.Duration // Total runtime elapsed
	Status              Status        // How did the finder end
}

// Converged reports whether the run ended with a root estimate that met a
// convergence check. Best-effort results after exhaustion are not converged.
func (r *CommonResult) Converged() bool {
	return r.Status.Converged()
}

// Common provides routines for controlling the settings provided by common.
type Common struct {
	iter      int
	funEvals  int
	startTime time.Time
	ctx       context.Context

	settings *CommonSettings

	*write.Display
	*FunctionWrapper
}

// NewCommon creates a new Common structure, and adds itself to the display
func NewCommon() *Common {
	c := &Common{
		Display:         write.NewDisplay(),
		FunctionWrapper: &FunctionWrapper{},
	}
	c.AddDataAdder(c, c.FunctionWrapper)
	return c
}

// Init initializes all of the values in common at the start of a run
func (c *Common) Init(ctx context.Context, settings *CommonSettings, function interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.iter = 0
	c.funEvals = 0
	c.startTime = time.Now()
	c.ctx = ctx

	c.settings = settings
	c.FunctionWrapper.Init(function)

	ws := c.settings.WriteSettings
	if ws == nil {
		ws = &write.WriteSettings{}
	}
	return c.Display.Init(ws)
}

func (c *Common) AppendWriteData(d []*write.Value) []*write.Value {
	d = append(d, &write.Value{Heading: "Iter", Value: c.iter})
	d = append(d, &write.Value{Heading: "FnEval", Value: c.funEvals})
	return d
}

// AddEvaluations counts function evaluations made outside of an iteration,
// such as evaluating the bracket endpoints.
func (c *Common) AddEvaluations(n int) {
	c.funEvals += n
}

// Iterations returns the number of iterations performed so far.
func (c *Common) Iterations() int {
	return c.iter
}

// Status checks the user function hook, cancellation and the budgets
func (c *Common) Status() Status {
	status := c.FunctionWrapper.Status()
	if status != Continue {
		return status
	}
	if c.ctx.Err() != nil {
		return Cancelled
	}
	if c.settings.MaximumIterations > -1 && c.iter >= c.settings.MaximumIterations {
		return MaximumIterations
	}
	if c.settings.MaximumFunctionEvaluations > -1 && c.funEvals >= c.settings.MaximumFunctionEvaluations {
		return MaximumFunctionEvaluations
	}
	if c.settings.MaximumRuntime > -1 && time.Since(c.startTime) > c.settings.MaximumRuntime {
		return MaximumRuntime
	}
	return Continue
}

// Result returns the results from the common structure
func (c *Common) Result(status Status) *CommonResult {
	return &CommonResult{
		Iterations:          c.iter,
		FunctionEvaluations: c.funEvals,
		Runtime:             time.Since(c.startTime),
		Status:              status,
	}
}

// Iterate performs an iteration of the common structure, incrementing
// the iteration, appending the number of function evaluations, and
// writing to the writers
func (c *Common) Iterate(nFunEvals int) error {
	c.iter++
	c.funEvals += nFunEvals
	return c.Display.Iterate()
}
