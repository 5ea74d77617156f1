package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
	"github.com/fatema-maitham/sudoko-solver/internal/ports"
	"github.com/fatema-maitham/sudoko-solver/internal/solver"
)

var (
	solveShowSteps bool
	solveShowStats bool
	solveJobs      int
)

var solveCmd = &cobra.Command{
	Use:   "solve <grid|file> [<grid|file>...]",
	Short: "Solve one or more puzzles",
	Long: `Solves each argument and prints the completed grid. Results come out
in argument order regardless of --jobs.

Examples:
  sudoku-solver solve 530070000600195000098000060800060003400803001700020006060000280000419005000080079
  sudoku-solver solve --steps --stats puzzle.txt
  sudoku-solver solve --jobs 4 a.txt b.txt c.txt d.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveShowSteps, "steps", false, "print the full step trace")
	solveCmd.Flags().BoolVar(&solveShowStats, "stats", false, "print solve counters and timing")
	solveCmd.Flags().IntVar(&solveJobs, "jobs", 1, "puzzles solved in parallel")
	rootCmd.AddCommand(solveCmd)
}

// readGridArg accepts a literal grid or the path of a file holding one.
func readGridArg(arg string) (domain.Grid, error) {
	if g, err := domain.ParseGrid(arg); err == nil {
		return g, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return domain.Grid{}, fmt.Errorf("argument is neither a grid nor a readable file: %w", err)
	}
	g, err := domain.ParseGrid(string(data))
	if err != nil {
		return domain.Grid{}, fmt.Errorf("%s: %w", arg, err)
	}
	return g, nil
}

type solveResult struct {
	arg   string
	out   domain.Grid
	steps []domain.Step
	stats ports.Stats
	err   error
}

func runSolve(cmd *cobra.Command, args []string) error {
	// Each puzzle is solved single-threaded; --jobs only fans out across
	// puzzles.
	results := make([]solveResult, len(args))

	var eg errgroup.Group
	if solveJobs > 0 {
		eg.SetLimit(solveJobs)
	}
	for i, arg := range args {
		i, arg := i, arg
		eg.Go(func() error {
			r := &results[i]
			r.arg = arg
			g, err := readGridArg(arg)
			if err != nil {
				r.err = err
				return nil
			}
			var rec domain.Recorder
			r.out, r.stats, r.err = solver.SolveWithSteps(g, &rec)
			r.steps = rec.Steps
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for i := range results {
		printSolveResult(cmd, len(args), &results[i])
		if results[i].err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d puzzles failed", failed, len(args))
	}
	return nil
}

func printSolveResult(cmd *cobra.Command, total int, r *solveResult) {
	w := cmd.OutOrStdout()
	if total > 1 {
		fmt.Fprintf(w, "== %s\n", r.arg)
	}
	if r.err != nil {
		fmt.Fprintf(w, "error: %v\n", r.err)
		return
	}
	if solveShowSteps {
		for n, s := range r.steps {
			fmt.Fprintf(w, "%4d  %s\n", n, formatStep(s))
		}
	}
	fmt.Fprint(w, r.out.PrettyString())
	if solveShowStats {
		fmt.Fprintf(w, "assignments=%d guesses=%d backtracks=%d duration=%s\n",
			r.stats.Assignments, r.stats.Guesses, r.stats.Backtracks,
			r.stats.Duration.Round(time.Microsecond))
	}
}

func formatStep(s domain.Step) string {
	pos := fmt.Sprintf("r%dc%d", domain.RowOf(s.Cell)+1, domain.ColOf(s.Cell)+1)
	switch s.Kind {
	case domain.StepFocus:
		return "focus     " + pos
	case domain.StepAssign:
		return fmt.Sprintf("assign    %s=%d (%s)", pos, s.Value, s.Reason)
	case domain.StepUnassign:
		return "unassign  " + pos
	case domain.StepGuess:
		return fmt.Sprintf("guess     %s=%d", pos, s.Value)
	case domain.StepBacktrack:
		return fmt.Sprintf("backtrack %s=%d", pos, s.Value)
	default:
		return string(s.Kind)
	}
}
