package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sudoku-solver",
	Short: "Deduction-based Sudoku solver with step traces",
	Long: `sudoku-solver solves 9x9 puzzles by constraint propagation (naked and
hidden singles) with MRV-guided backtracking, and can report every move
it makes as an ordered step trace.

Grids are 81 cells in row-major order; '0', '.' and '-' mark empty
cells and whitespace is ignored. An argument that does not parse as a
grid is read as a file containing one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
