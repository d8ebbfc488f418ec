package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dcurrie/picrin/internal/logging"
	"github.com/dcurrie/picrin/irep"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newUnpackCmd())
}

func newUnpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <archive> <out-dir>",
		Short: "Split a zstd IRep archive back into individual blob files",
		Long: `The unpack command reverses pack: it reads <archive>, zstd-decompresses
it, splits the length-prefixed blobs apart, and writes each one as
<out-dir>/blob-N.irep (SPEC_FULL.md §5.F's irep.UnpackArchive).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			archivePath, outDir := args[0], args[1]
			archive, err := os.ReadFile(archivePath)
			if err != nil {
				return fmt.Errorf("unpack: reading %s: %w", archivePath, err)
			}
			blobs, err := irep.UnpackArchive(archive)
			if err != nil {
				return fmt.Errorf("unpack: %w", err)
			}
			logging.Debug("unpack: extracted blobs", "count", len(blobs))
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("unpack: creating %s: %w", outDir, err)
			}
			for i, b := range blobs {
				p := filepath.Join(outDir, fmt.Sprintf("blob-%d.irep", i))
				if err := os.WriteFile(p, b, 0o644); err != nil {
					return fmt.Errorf("unpack: writing %s: %w", p, err)
				}
			}
			printVerbose("unpacked %d blob(s) into %s\n", len(blobs), outDir)
			return nil
		},
	}
}
