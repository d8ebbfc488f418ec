package main

import (
	"fmt"
	"os"

	"github.com/dcurrie/picrin/internal/logging"
	"github.com/dcurrie/picrin/irep"
	"github.com/dcurrie/picrin/value"
	"github.com/spf13/cobra"
)

var (
	serializeInt    int64
	serializeString string
	serializeSymbol string
	serializeChar   string
)

func init() {
	cmd := newSerializeCmd()
	cmd.Flags().Int64Var(&serializeInt, "int", 0, "serialize an exact integer")
	cmd.Flags().StringVar(&serializeString, "string", "", "serialize a string")
	cmd.Flags().StringVar(&serializeSymbol, "symbol", "", "serialize an interned symbol")
	cmd.Flags().StringVar(&serializeChar, "char", "", "serialize a single character")
	rootCmd.AddCommand(cmd)
}

func newSerializeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serialize <out-file>",
		Short: "Encode a value to the IRep binary format and write it to a file",
		Long: `The serialize command builds one value from exactly one of --int,
--string, --symbol, or --char, encodes it per spec.md §4.F, and writes
the encoded bytes to <out-file> (spec.md §6 serialize(value)).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := serializeSelectedValue(cmd)
			if err != nil {
				return err
			}
			logging.Debug("serialize: encoding value", "tag", v.Tag())
			blob, err := irep.Encode(v)
			if err != nil {
				return fmt.Errorf("serialize: %w", err)
			}
			if err := os.WriteFile(args[0], blob, 0o644); err != nil {
				return fmt.Errorf("serialize: writing %s: %w", args[0], err)
			}
			printVerbose("wrote %d bytes to %s\n", len(blob), args[0])
			return nil
		},
	}
}

// serializeSelectedValue builds the one value named by whichever of
// --int/--string/--symbol/--char was passed, using cmd.Flags().Changed so
// that an explicit "--int 0" is distinguishable from not passing --int.
func serializeSelectedValue(cmd *cobra.Command) (value.Value, error) {
	flags := cmd.Flags()
	set := 0
	var v value.Value
	if flags.Changed("int") {
		set++
		v = value.Int(serializeInt)
	}
	if flags.Changed("string") {
		set++
		v = ctx.Heap.AllocString(serializeString)
	}
	if flags.Changed("symbol") {
		set++
		v = ctx.Interner.Intern(serializeSymbol)
	}
	if flags.Changed("char") {
		set++
		runes := []rune(serializeChar)
		if len(runes) != 1 {
			return value.Invalid(), fmt.Errorf("serialize: --char must be exactly one character, got %q", serializeChar)
		}
		v = value.Char(runes[0])
	}
	if set != 1 {
		return value.Invalid(), fmt.Errorf("serialize: specify exactly one of --int, --string, --symbol, --char")
	}
	return v, nil
}
