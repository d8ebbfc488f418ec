package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGensymCmd())
}

func newGensymCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gensym",
		Short: "Print a fresh uninterned symbol",
		Long: `The gensym command allocates a fresh uninterned symbol (spec.md §6
gensym()) and prints its name. Each invocation of this process produces
one symbol from a fresh interpreter instance, whose gensym counter starts
over, so every run prints the same name (.g1); within a process each
gensym is a distinct object, never equal to an interned symbol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := ctx.Gensym()
			name, err := g.SymName()
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(map[string]any{"symbol": name})
			}
			printInfo("%s\n", name)
			return nil
		},
	}
}
