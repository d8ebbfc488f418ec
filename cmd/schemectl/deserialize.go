package main

import (
	"fmt"
	"os"

	"github.com/dcurrie/picrin/internal/logging"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDeserializeCmd())
}

func newDeserializeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deserialize <in-file>",
		Short: "Decode a value from the IRep binary format and display it",
		Long: `The deserialize command reads <in-file>, decodes it per spec.md §4.F,
and displays the resulting value on stdout (spec.md §6
deserialize(blob) -> value).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("deserialize: reading %s: %w", args[0], err)
			}
			blob := ctx.Heap.AllocBlob(buf)
			logging.Debug("deserialize: decoding blob", "bytes", len(buf))
			v, err := ctx.Deserialize(blob)
			if err != nil {
				return fmt.Errorf("deserialize: %w", err)
			}
			if jsonOut {
				return printJSON(map[string]any{"tag": v.Tag().String()})
			}
			if err := ctx.Display(v); err != nil {
				return err
			}
			printInfo("\n")
			return nil
		},
	}
}
