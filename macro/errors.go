package macro

import "errors"

var (
	// ErrSyntax marks a malformed special form (spec.md §7 "syntax error").
	ErrSyntax = errors.New("macro: syntax error")

	// ErrImproperList is raised when macroexpand is asked to expand a pair
	// whose spine does not end in nil, mirroring
	// original_source/src/macro.c's pic_list_p guard in macroexpand_node.
	ErrImproperList = errors.New("macro: cannot macroexpand improper list")

	// ErrUnexpectedType marks an object variant macroexpand never accepts
	// as a subform (procedures, ports, records, ireps, dicts, senvs, ...).
	ErrUnexpectedType = errors.New("macro: unexpected value type")

	// ErrNotProcedure marks a define-syntax/let-syntax transformer
	// expression that evaluated to something other than a procedure.
	ErrNotProcedure = errors.New("macro: macro definition evaluates to non-procedure object")

	// ErrNotSymbol marks a binding position (define/define-syntax/lambda
	// formal) that did not expand to a symbol.
	ErrNotSymbol = errors.New("macro: binding to non-symbol object")
)

// ExpandError wraps an error raised while evaluating a transformer spec
// (define-syntax, let-syntax) or applying a macro transformer during
// expansion, with the message `macroexpand error while …: <msg>`, grounded
// on macroexpand_defsyntax's and macroexpand_macro's "macroexpand error
// while %s: %s" wrapping in original_source/src/macro.c. Syntax errors
// (ErrSyntax, ErrNotSymbol, ErrNotProcedure, ErrImproperList) are returned
// as they are, not wrapped in an ExpandError.
type ExpandError struct {
	While string // "definition" or "application"
	Err   error
}

func (e *ExpandError) Error() string {
	return "macroexpand error while " + e.While + ": " + e.Err.Error()
}

func (e *ExpandError) Unwrap() error { return e.Err }

func wrapExpand(while string, err error) error {
	if err == nil {
		return nil
	}
	return &ExpandError{While: while, Err: err}
}
