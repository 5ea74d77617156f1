package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fatema-maitham/sudoko-solver/internal/hint"
)

var hintCmd = &cobra.Command{
	Use:   "hint <grid|file>",
	Short: "Show the next forced move",
	Long: `Prints the first move a deduction sweep would make: the lowest-index
naked single if one exists, otherwise the first hidden single. Exits
with an error when only guessing can advance the grid.`,
	Args: cobra.ExactArgs(1),
	RunE: runHint,
}

func init() {
	rootCmd.AddCommand(hintCmd)
}

func runHint(cmd *cobra.Command, args []string) error {
	g, err := readGridArg(args[0])
	if err != nil {
		return err
	}
	h, found, err := hint.NewSingles().Hint(g)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no forced move: every empty cell needs a guess")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "r%dc%d=%d (%s)\n", h.Row+1, h.Col+1, h.Value, h.Reason)
	return nil
}
