package main

import (
	"fmt"
	"os"

	"github.com/dcurrie/picrin/internal/logging"
	"github.com/dcurrie/picrin/irep"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPackCmd())
}

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <out-archive> <in-file>...",
		Short: "Bundle one or more serialized IRep blobs into a compressed archive",
		Long: `The pack command reads one or more files previously produced by
serialize, concatenates them length-prefixed, zstd-compresses the
result, and writes it to <out-archive> (SPEC_FULL.md §5.F's
irep.PackArchive, a domain-stack extension beyond the distilled
spec.md).`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath := args[0]
			blobs := make([][]byte, 0, len(args)-1)
			for _, p := range args[1:] {
				b, err := os.ReadFile(p)
				if err != nil {
					return fmt.Errorf("pack: reading %s: %w", p, err)
				}
				blobs = append(blobs, b)
			}
			logging.Debug("pack: archiving blobs", "count", len(blobs))
			archive, err := irep.PackArchive(blobs)
			if err != nil {
				return fmt.Errorf("pack: %w", err)
			}
			if err := os.WriteFile(outPath, archive, 0o644); err != nil {
				return fmt.Errorf("pack: writing %s: %w", outPath, err)
			}
			printVerbose("packed %d blob(s) into %s (%d bytes)\n", len(blobs), outPath, len(archive))
			return nil
		},
	}
}
