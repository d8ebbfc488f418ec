package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dcurrie/picrin/interp"
	"github.com/dcurrie/picrin/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

// ctx is the single interp.Context shared by whichever subcommand runs in
// this process invocation (spec.md §5: one heap/intern-table/macro-table
// per interpreter instance; a CLI invocation is one instance).
var ctx *interp.Context

var rootCmd = &cobra.Command{
	Use:   "schemectl",
	Short: "Exercise the picrin core: printer, syntactic environments, macro expander, IRep serializer",
	Long: `schemectl is a tool for exercising the picrin Scheme core directly:
expanding forms against the macro expander, serializing and deserializing
values through the IRep binary format, and printing values with the
write/write-shared/write-simple/display printer modes.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		opts := logging.DefaultOptions()
		if verbose {
			opts.Enabled = true
			opts.Level = slog.LevelDebug
		}
		logging.Init(opts)
		ctx = interp.New("schemectl")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON.
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
