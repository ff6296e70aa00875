package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Albert-2002/Optimization/config"
	"github.com/Albert-2002/Optimization/internal/problem"
)

var quadraticCmd = &cobra.Command{
	Use:   "quadratic A B C",
	Short: "Solve ax^2 + bx + c = 0 in closed form",
	Long: `Solves ax^2 + bx + c = 0 in closed form.

Reports two roots (possibly equal), a single root when a is zero, no real
root for a negative discriminant, and no or infinitely many solutions when a
and b are both zero.`,
	Example: "  rootfind quadratic 1 2 1\n  rootfind quadratic -- 1 -3 2",
	Args:    cobra.ExactArgs(3),
	RunE:    runQuadratic,
}

func init() {
	rootCmd.AddCommand(quadraticCmd)
}

func runQuadratic(cmd *cobra.Command, args []string) error {
	coeffs := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("coefficient %s: %w", "ABC"[i:i+1], err)
		}
		coeffs[i] = v
	}
	r, err := problem.Solve(cmd.Context(), config.Problem{
		Name:         "quadratic",
		Method:       string(config.MethodQuadratic),
		Coefficients: coeffs,
	})
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), r)
	return nil
}
