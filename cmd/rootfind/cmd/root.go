package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "rootfind",
	Short: "Find roots of scalar functions",
	Long: `rootfind finds real roots of functions of one variable.

Methods:
  quadratic  - closed form roots of ax^2 + bx + c
  falsepos   - false position (regula falsi) on a bracket
  bisect     - bisection on a bracket
  newton     - Newton-Raphson from an initial guess
  run        - every problem of a TOML or YAML file

Functions are written as expressions in x, for example "x^2 + 5*x + cos(x)".`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled output")
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("error:"), err)
}
