package main

import (
	"fmt"

	"github.com/dcurrie/picrin/internal/logging"
	"github.com/dcurrie/picrin/macro"
	"github.com/dcurrie/picrin/senv"
	"github.com/dcurrie/picrin/value"
	"github.com/spf13/cobra"
)

var expandForm string

func init() {
	cmd := newExpandCmd()
	cmd.Flags().StringVar(&expandForm, "form", "lambda", "canned form to expand: quote or lambda")
	rootCmd.AddCommand(cmd)
}

func newExpandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand",
		Short: "Macroexpand a canned form against the current library's senv",
		Long: `The expand command builds one of a small set of canned forms (--form
quote or --form lambda, no reader in scope per spec.md §7) and
macroexpands it via macroexpand(expr) (spec.md §6), printing the
resulting form with write. Compiler/VM evaluation of the expanded form
is out of scope (spec.md §7 Non-goals), so the macro.Collaborators
plugged in here fails every eval, import, and macro application with an
out-of-scope error; the quote and lambda forms never call it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := buildCannedForm(expandForm)
			if err != nil {
				return err
			}
			logging.Debug("expand: expanding form", "form", expandForm)
			expanded, err := ctx.Expand(form, noopCollaborators{})
			if err != nil {
				return fmt.Errorf("expand: %w", err)
			}
			if err := ctx.Write(expanded); err != nil {
				return err
			}
			printInfo("\n")
			return nil
		},
	}
}

// buildCannedForm constructs the unexpanded s-expression for name, using
// the same heap/intern-table the rest of this process shares, the way
// expander_test.go's helpers build test fixtures.
func buildCannedForm(name string) (value.Value, error) {
	switch name {
	case "quote":
		quoteSym := ctx.Macros.Keyword(macro.KeywordQuote)
		datum := ctx.Interner.Intern("hello")
		return ctx.Heap.AllocPair(quoteSym, ctx.Heap.AllocPair(datum, value.Nil())), nil
	case "lambda":
		lambdaSym := ctx.Macros.Keyword(macro.KeywordLambda)
		x := ctx.Interner.Intern("x")
		formals := ctx.Heap.AllocPair(x, value.Nil())
		body := ctx.Heap.AllocPair(x, value.Nil())
		return ctx.Heap.AllocPair(lambdaSym, ctx.Heap.AllocPair(formals, body)), nil
	default:
		return value.Invalid(), fmt.Errorf("expand: unknown --form %q (want quote or lambda)", name)
	}
}

// noopCollaborators satisfies macro.Collaborators for forms that never
// reach eval/macro-application/import (quote, lambda) — this CLI has no
// compiler or VM to delegate to (spec.md §7 Non-goals).
type noopCollaborators struct{}

func (noopCollaborators) Eval(expr value.Value, e *senv.SEnv) (value.Value, error) {
	return value.Invalid(), fmt.Errorf("expand: eval is out of scope for this core (no compiler/VM)")
}

func (noopCollaborators) ApplyLegacyMacro(proc, args value.Value) (value.Value, error) {
	return value.Invalid(), fmt.Errorf("expand: legacy macro application is out of scope for this core (no compiler/VM)")
}

func (noopCollaborators) ApplyHygienicMacro(proc, form value.Value, useSenv, defSenv *senv.SEnv) (value.Value, error) {
	return value.Invalid(), fmt.Errorf("expand: hygienic macro application is out of scope for this core (no compiler/VM)")
}

func (noopCollaborators) Import(spec value.Value, lib *macro.Library) error {
	return fmt.Errorf("expand: import is out of scope for this core (no library loader)")
}
