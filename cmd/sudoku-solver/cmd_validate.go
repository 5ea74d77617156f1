package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
	"github.com/fatema-maitham/sudoko-solver/internal/solver"
)

var validateCmd = &cobra.Command{
	Use:   "validate <grid|file> [<grid|file>...]",
	Short: "Check puzzles for conflicting digits",
	Long: `Reports, for each argument, whether the filled cells respect the row,
column and box rules. Empty cells are ignored; a valid report does not
mean the puzzle is solvable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	bad := 0
	for _, arg := range args {
		g, err := readGridArg(arg)
		if err != nil {
			fmt.Fprintf(w, "%s: error: %v\n", arg, err)
			bad++
			continue
		}
		ok, conflicts := solver.Validate(g)
		if ok {
			fmt.Fprintf(w, "%s: ok\n", arg)
			continue
		}
		bad++
		fmt.Fprintf(w, "%s: %d conflicting cells:", arg, len(conflicts))
		for _, cell := range conflicts {
			fmt.Fprintf(w, " r%dc%d", domain.RowOf(cell)+1, domain.ColOf(cell)+1)
		}
		fmt.Fprintln(w)
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d grids rejected", bad, len(args))
	}
	return nil
}
