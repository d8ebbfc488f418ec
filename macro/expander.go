// Package macro implements spec.md §4.E: the hygienic recursive expander
// and its eight special forms, driven off a Table (rename -> macro,
// current-library stack) and a senv.SEnv chain. Grounded throughout on
// original_source/src/macro.c's macroexpand_node/macroexpand_list dispatch.
package macro

import (
	"fmt"

	"github.com/dcurrie/picrin/senv"
	"github.com/dcurrie/picrin/value"
)

// Collaborators is the boundary to the pieces spec.md §1 places out of
// scope: the compiler and the VM. A transformer spec (the third element of
// define-syntax, or a let-syntax binding's value form) must be expanded,
// compiled, and run to produce the procedure Value that gets installed as
// a macro (original_source/src/macro.c's pic_eval); a macro transformer
// procedure, once installed, must be applied to a use-site form to produce
// its syntactic expansion (pic_apply). Both require running Scheme code,
// which this package does not implement. Grounded in shape on
// hive/merge/strategy.Strategy: a small named interface the caller of this
// package's constructor implements once, backed by whatever compiler/VM it
// has.
type Collaborators interface {
	// Eval expands, compiles, and runs expr in the given senv, returning
	// its result value. Used for transformer specs (define-syntax,
	// let-syntax) and for define-library body forms.
	Eval(expr value.Value, e *senv.SEnv) (value.Value, error)

	// ApplyLegacyMacro calls a non-hygienic macro's transformer proc with
	// args (a proper Scheme list, not a Go slice — matching
	// original_source's pic_apply(pic, proc, args) convention so a
	// legacy macro's raw cdr list needs no repacking).
	ApplyLegacyMacro(proc value.Value, args value.Value) (value.Value, error)

	// ApplyHygienicMacro calls a hygienic macro's transformer proc with
	// the whole use-site form plus the senvs at the use site and at the
	// macro's definition site (original_source's
	// pic_list3(expr, senv_obj(useSenv), senv_obj(defSenv)) argument
	// convention — senv.SEnv is a compile-time structure, not a
	// value.Value variant in this core, so it is passed through
	// directly rather than boxed).
	ApplyHygienicMacro(proc, form value.Value, useSenv, defSenv *senv.SEnv) (value.Value, error)

	// Import performs the load-path resolution and binding merge a
	// (import spec) form names. Out of scope here: the reader and
	// module loader own it; the expander only records that it happened
	// (Library.Imports) and delegates the side effect.
	Import(spec value.Value, lib *Library) error
}

// Expander holds everything Expand needs beyond the senv chain: the heap
// and intern table for allocating fresh pairs/gensyms, the macro Table,
// and the Collaborators boundary.
type Expander struct {
	Heap     *value.Heap
	Interner *value.InternTable
	Table    *Table
	Collab   Collaborators
}

// New constructs an Expander.
func New(heap *value.Heap, interner *value.InternTable, table *Table, collab Collaborators) *Expander {
	return &Expander{Heap: heap, Interner: interner, Table: table, Collab: collab}
}

// isAtom reports whether v is one of the immediate/literal variants
// macroexpand returns unchanged (spec.md §4.E; original_source/src/macro.c
// macroexpand_node's PIC_TT_EOF/NIL/BOOL/FLOAT/INT/CHAR/STRING/VECTOR/BLOB
// case group).
func isAtom(v value.Value) bool {
	switch v.Tag() {
	case value.TagNil, value.TagTrue, value.TagFalse, value.TagInt, value.TagFloat,
		value.TagChar, value.TagEOF, value.TagString, value.TagVector, value.TagBlob:
		return true
	default:
		return false
	}
}

// properList reports whether v is a nil-terminated chain of pairs
// (original_source's pic_list_p, consulted by macroexpand_node before
// dispatching a pair).
func properList(v value.Value) bool {
	for v.IsPair() {
		v, _ = v.Cdr()
	}
	return v.IsNil()
}

// Expand is macroexpand(expr, senv): the recursive dispatch of spec.md
// §4.E.
func (x *Expander) Expand(expr value.Value, e *senv.SEnv) (value.Value, error) {
	switch {
	case isAtom(expr):
		return expr, nil
	case expr.IsSymbol():
		return senv.MakeIdentifier(expr, e, x.Interner)
	case expr.IsPair():
		return x.expandPair(expr, e)
	default:
		return value.Invalid(), fmt.Errorf("%w: %s", ErrUnexpectedType, expr.Tag())
	}
}

// ExpandList is macroexpand_list: recursively expands every element of a
// proper or improper list, preserving its shape — a dotted tail is
// expanded (not required to be a pair or nil) rather than rejected, unlike
// the stricter properList check Expand itself applies to pair dispatch.
func (x *Expander) ExpandList(obj value.Value, e *senv.SEnv) (value.Value, error) {
	if !obj.IsPair() {
		return x.Expand(obj, e)
	}
	car, _ := obj.Car()
	cdr, _ := obj.Cdr()
	head, err := x.Expand(car, e)
	if err != nil {
		return value.Invalid(), err
	}
	tail, err := x.ExpandList(cdr, e)
	if err != nil {
		return value.Invalid(), err
	}
	return x.Heap.AllocPair(head, tail), nil
}

func (x *Expander) expandPair(expr value.Value, e *senv.SEnv) (value.Value, error) {
	if !properList(expr) {
		return value.Invalid(), ErrImproperList
	}

	carRaw, _ := expr.Car()
	car, err := x.Expand(carRaw, e)
	if err != nil {
		return value.Invalid(), err
	}

	if car.IsSymbol() {
		if kw, ok := x.Table.SpecialForm(car); ok {
			return x.dispatchSpecialForm(kw, expr, e)
		}
		if m, ok := x.Table.Lookup(car); ok {
			return x.expandMacro(m, expr, e)
		}
	}

	cdr, _ := expr.Cdr()
	tail, err := x.ExpandList(cdr, e)
	if err != nil {
		return value.Invalid(), err
	}
	return x.Heap.AllocPair(car, tail), nil
}

// expandMacro applies an installed macro's transformer to expr and
// recursively expands the result (spec.md §4.E "call the transformer and
// recursively expand the result"; original_source's macroexpand_macro).
func (x *Expander) expandMacro(m *Macro, expr value.Value, e *senv.SEnv) (value.Value, error) {
	var (
		v   value.Value
		err error
	)
	if m.Senv == nil {
		args, _ := expr.Cdr()
		v, err = x.Collab.ApplyLegacyMacro(m.Transformer, args)
	} else {
		v, err = x.Collab.ApplyHygienicMacro(m.Transformer, expr, e, m.Senv)
	}
	if err != nil {
		return value.Invalid(), wrapExpand("application", err)
	}
	return x.Expand(v, e)
}
