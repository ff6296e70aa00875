package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Albert-2002/Optimization/config"
	"github.com/Albert-2002/Optimization/internal/problem"
	"github.com/Albert-2002/Optimization/write"
)

var logDir string

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Solve every problem of a TOML or YAML file",
	Long: `Solves every problem of a TOML or YAML problem file. The format follows the
file extension (.toml, .yaml or .yml).

Every problem gets a run id. With --log-dir the iterations of each problem
are written as CSV to <dir>/<name>-<id>.csv.`,
	Example: "  rootfind run problems.toml\n  rootfind run problems.yaml --log-dir traces",
	Args:    cobra.ExactArgs(1),
	RunE:    runFile,
}

func init() {
	runCmd.Flags().StringVar(&logDir, "log-dir", "", "Write a CSV trace per problem to `DIR`")
	rootCmd.AddCommand(runCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	f, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	failed := 0
	for i, p := range f.Problems {
		if i > 0 {
			fmt.Fprintln(out)
		}
		r, err := solveLogged(cmd, p)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %v\n", render(errorStyle, p.Name), err)
			continue
		}
		printReport(out, r)
		if r.Err != nil {
			failed++
			field(out, "error", render(errorStyle, r.Err.Error()))
		}
		if cmd.Context().Err() != nil {
			break
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d problems failed", failed, len(f.Problems))
	}
	return nil
}

// solveLogged solves p, writing its trace to a file named after the run id
// when a log directory is set. The closed form solver has no trace.
func solveLogged(cmd *cobra.Command, p config.Problem) (*problem.Report, error) {
	if m, _ := config.ParseMethod(p.Method); logDir == "" || m == config.MethodQuadratic {
		return problem.Solve(cmd.Context(), p)
	}
	tmp, err := os.CreateTemp(logDir, "trace-*.csv")
	if err != nil {
		return nil, err
	}
	r, err := problem.Solve(cmd.Context(), p, write.Writer{Writer: tmp, T: write.Logger})
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	name := filepath.Join(logDir, fmt.Sprintf("%s-%s.csv", filepath.Base(r.Name), r.ID))
	if err := os.Rename(tmp.Name(), name); err != nil {
		return nil, err
	}
	return r, nil
}
