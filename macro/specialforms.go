package macro

import (
	"github.com/dcurrie/picrin/senv"
	"github.com/dcurrie/picrin/value"
)

// dispatchSpecialForm routes to the handler for kw. expr is the whole,
// unexpanded form (car already known to have canonicalized to kw's
// rename); e is the senv the form was encountered in.
func (x *Expander) dispatchSpecialForm(kw Keyword, expr value.Value, e *senv.SEnv) (value.Value, error) {
	switch kw {
	case KeywordQuote:
		return x.expandQuote(expr)
	case KeywordImport:
		return x.expandImport(expr)
	case KeywordExport:
		return x.expandExport(expr)
	case KeywordDefineLibrary:
		return x.expandDefineLibrary(expr)
	case KeywordLambda:
		return x.expandLambda(expr, e)
	case KeywordDefine:
		return x.expandDefine(expr, e)
	case KeywordDefineSyntax:
		return x.expandDefineSyntax(expr, e)
	case KeywordLetSyntax:
		return x.expandLetSyntax(expr, e)
	default:
		return value.Invalid(), ErrSyntax
	}
}

func listLen(v value.Value) int {
	n := 0
	for v.IsPair() {
		n++
		v, _ = v.Cdr()
	}
	return n
}

func nth(v value.Value, i int) (value.Value, error) {
	for ; i > 0; i-- {
		var err error
		v, err = v.Cdr()
		if err != nil {
			return value.Invalid(), err
		}
	}
	return v.Car()
}

// expandQuote returns (quote datum) unchanged except for canonicalizing
// the head to the quote keyword's rename — the datum itself is never
// re-expanded (spec.md §4.E "quote — returned unchanged (cdr not
// re-expanded)"; original_source's macroexpand_quote).
func (x *Expander) expandQuote(expr value.Value) (value.Value, error) {
	cdr, _ := expr.Cdr()
	return x.Heap.AllocPair(x.Table.Keyword(KeywordQuote), cdr), nil
}

// expandImport performs the import side effect for each spec and returns
// undefined (spec.md §4.E; original_source's macroexpand_import).
func (x *Expander) expandImport(expr value.Value) (value.Value, error) {
	cdr, _ := expr.Cdr()
	lib := x.Table.Library()
	for rest := cdr; rest.IsPair(); {
		spec, _ := rest.Car()
		lib.Imports = append(lib.Imports, spec)
		if err := x.Collab.Import(spec, lib); err != nil {
			return value.Invalid(), err
		}
		rest, _ = rest.Cdr()
	}
	return value.Undefined(), nil
}

// expandExport records each export spec for the current library and
// returns undefined (spec.md §4.E; original_source's macroexpand_export).
// A spec is either a bare symbol (exported under its own name) or
// (rename inner outer); the literal symbol "rename" is compared
// structurally, not hygienically, matching the original.
func (x *Expander) expandExport(expr value.Value) (value.Value, error) {
	cdr, _ := expr.Cdr()
	lib := x.Table.Library()
	renameSym := x.Interner.Intern("rename")
	for rest := cdr; rest.IsPair(); {
		spec, _ := rest.Car()
		switch {
		case spec.IsSymbol():
			if err := lib.Export(spec, spec); err != nil {
				return value.Invalid(), err
			}
		case spec.IsPair() && properList(spec) && listLen(spec) == 3:
			head, _ := spec.Car()
			if !head.IsSymbol() || !value.Identical(head, renameSym) {
				return value.Invalid(), ErrSyntax
			}
			inner, _ := nth(spec, 1)
			outer, _ := nth(spec, 2)
			if !inner.IsSymbol() || !outer.IsSymbol() {
				return value.Invalid(), ErrSyntax
			}
			if err := lib.Export(inner, outer); err != nil {
				return value.Invalid(), err
			}
		default:
			return value.Invalid(), ErrSyntax
		}
		rest, _ = rest.Cdr()
	}
	return value.Undefined(), nil
}

// expandDefineLibrary creates a fresh library with the given name (an
// earlier library of the same name is not re-entered; its senv and
// import/export records are not reused), evaluates
// each body form in it via Collaborators.Eval, and restores the previous
// current library on every exit path, rethrowing any error after
// restoration (spec.md §4.E; original_source's macroexpand_deflibrary's
// pic_try/pic_catch around pic_in_library).
func (x *Expander) expandDefineLibrary(expr value.Value) (value.Value, error) {
	if listLen(expr) < 2 {
		return value.Invalid(), ErrSyntax
	}
	name, _ := nth(expr, 1)
	lib := x.Table.PushLibrary(name)
	defer x.Table.PopLibrary()

	bodyLen := listLen(expr) - 2
	for i := 0; i < bodyLen; i++ {
		form, _ := nth(expr, 2+i)
		if _, err := x.Collab.Eval(form, lib.Senv); err != nil {
			return value.Invalid(), err
		}
	}
	return value.Undefined(), nil
}

// expandLambda rewrites (lambda formals body...) into a form with a fresh
// child senv binding every formal to a gensym, and both formals and body
// recursively expanded in the child. Mirrors
// original_source/src/macro.c's macroexpand_lambda exactly, including its
// two-pass structure over the formals list: a first pass that only
// installs renames (so body occurrences of a formal already resolve), then
// macroexpand_list re-walks the formals themselves to produce the renamed
// output list.
func (x *Expander) expandLambda(expr value.Value, e *senv.SEnv) (value.Value, error) {
	if listLen(expr) < 2 {
		return value.Invalid(), ErrSyntax
	}
	formalsRaw, _ := nth(expr, 1)

	in := senv.New(e)

	a := formalsRaw
	for a.IsPair() {
		v, _ := a.Car()
		if !v.IsSymbol() {
			expanded, err := x.Expand(v, e)
			if err != nil {
				return value.Invalid(), err
			}
			v = expanded
		}
		if !v.IsSymbol() {
			return value.Invalid(), ErrSyntax
		}
		sym, err := v.SymbolObj()
		if err != nil {
			return value.Invalid(), err
		}
		rename := x.Interner.Gensym(".g-" + sym.Name)
		if err := in.PutRename(v, rename); err != nil {
			return value.Invalid(), err
		}
		a, _ = a.Cdr()
	}
	if !a.IsSymbol() {
		expanded, err := x.Expand(a, e)
		if err != nil {
			return value.Invalid(), err
		}
		a = expanded
	}
	if a.IsSymbol() {
		sym, err := a.SymbolObj()
		if err != nil {
			return value.Invalid(), err
		}
		rename := x.Interner.Gensym(".g-" + sym.Name)
		if err := in.PutRename(a, rename); err != nil {
			return value.Invalid(), err
		}
	} else if !a.IsNil() {
		return value.Invalid(), ErrSyntax
	}

	formals, err := x.ExpandList(formalsRaw, in)
	if err != nil {
		return value.Invalid(), err
	}
	bodyRaw, _ := expr.Cdr()
	bodyRaw, _ = bodyRaw.Cdr()
	body, err := x.ExpandList(bodyRaw, in)
	if err != nil {
		return value.Invalid(), err
	}
	return x.Heap.AllocPair(x.Table.Keyword(KeywordLambda), x.Heap.AllocPair(formals, body)), nil
}

// expandDefine rewrites the `(define (f args...) body...)` sugar into
// `(define f (lambda (args...) body...))`, binds the variable in the
// current senv if not already bound there, and expands the value in the
// current senv (spec.md §4.E; original_source's macroexpand_define).
func (x *Expander) expandDefine(expr value.Value, e *senv.SEnv) (value.Value, error) {
	if listLen(expr) < 2 {
		return value.Invalid(), ErrSyntax
	}
	formal, _ := nth(expr, 1)

	var varSym value.Value
	if formal.IsPair() {
		varSym, _ = formal.Car()
	} else {
		if listLen(expr) != 3 {
			return value.Invalid(), ErrSyntax
		}
		varSym = formal
	}
	if !varSym.IsSymbol() {
		expanded, err := x.Expand(varSym, e)
		if err != nil {
			return value.Invalid(), err
		}
		varSym = expanded
	}
	if !varSym.IsSymbol() {
		return value.Invalid(), ErrNotSymbol
	}
	if _, ok, err := e.FindRename(varSym); err != nil {
		return value.Invalid(), err
	} else if !ok {
		sym, err := varSym.SymbolObj()
		if err != nil {
			return value.Invalid(), err
		}
		rename := x.Interner.Gensym(".g-" + sym.Name)
		if err := e.PutRename(varSym, rename); err != nil {
			return value.Invalid(), err
		}
	}

	body, _ := expr.Cdr()
	body, _ = body.Cdr()

	var val value.Value
	var err error
	if formal.IsPair() {
		formalCdr, _ := formal.Cdr()
		fakeLambda := x.Heap.AllocPair(value.False(), x.Heap.AllocPair(formalCdr, body))
		val, err = x.expandLambda(fakeLambda, e)
	} else {
		first, _ := body.Car()
		val, err = x.Expand(first, e)
	}
	if err != nil {
		return value.Invalid(), err
	}

	resolved, err := senv.MakeIdentifier(varSym, e, x.Interner)
	if err != nil {
		return value.Invalid(), err
	}
	return list3(x.Heap, x.Table.Keyword(KeywordDefine), resolved, val), nil
}

// expandDefineSyntax binds a rename in the current senv (reusing one
// already present), evaluates the transformer spec via Collaborators.Eval,
// requires a procedure result, and installs it as a macro capturing e
// (spec.md §4.E; original_source's macroexpand_defsyntax).
func (x *Expander) expandDefineSyntax(expr value.Value, e *senv.SEnv) (value.Value, error) {
	if listLen(expr) != 3 {
		return value.Invalid(), ErrSyntax
	}
	varSym, _ := nth(expr, 1)
	if !varSym.IsSymbol() {
		expanded, err := x.Expand(varSym, e)
		if err != nil {
			return value.Invalid(), err
		}
		varSym = expanded
	}
	if !varSym.IsSymbol() {
		return value.Invalid(), ErrNotSymbol
	}

	rename, ok, err := e.FindRename(varSym)
	if err != nil {
		return value.Invalid(), err
	}
	if !ok {
		sym, serr := varSym.SymbolObj()
		if serr != nil {
			return value.Invalid(), serr
		}
		rename = x.Interner.Gensym(".g-" + sym.Name)
		if err := e.PutRename(varSym, rename); err != nil {
			return value.Invalid(), err
		}
	}

	transformerSpec, _ := nth(expr, 2)
	val, err := x.Collab.Eval(transformerSpec, e)
	if err != nil {
		return value.Invalid(), wrapExpand("definition", err)
	}
	if !val.IsProcedure() {
		return value.Invalid(), ErrNotProcedure
	}
	if err := x.Table.Define(rename, &Macro{Senv: e, Transformer: val}); err != nil {
		return value.Invalid(), err
	}
	return value.Undefined(), nil
}

// expandLetSyntax installs each binding as a macro scoped to a child senv,
// then rewrites to (begin body...) expanded in that child (spec.md §4.E;
// original_source's macroexpand_let_syntax). Each transformer captures the
// outer senv e, exactly as define-syntax does, not the child — a
// let-syntax macro's hygiene is anchored at its point of definition, which
// is the enclosing form, not the fresh scope created only to hold the
// syntactic bindings.
func (x *Expander) expandLetSyntax(expr value.Value, e *senv.SEnv) (value.Value, error) {
	in := senv.New(e)
	if listLen(expr) < 2 {
		return value.Invalid(), ErrSyntax
	}
	formal, _ := nth(expr, 1)
	if !properList(formal) {
		return value.Invalid(), ErrSyntax
	}

	for rest := formal; rest.IsPair(); {
		binding, _ := rest.Car()
		if !binding.IsPair() || listLen(binding) != 2 {
			return value.Invalid(), ErrSyntax
		}
		varSym, _ := binding.Car()
		if !varSym.IsSymbol() {
			expanded, err := x.Expand(varSym, e)
			if err != nil {
				return value.Invalid(), err
			}
			varSym = expanded
		}
		if !varSym.IsSymbol() {
			return value.Invalid(), ErrNotSymbol
		}

		rename, ok, err := in.FindRename(varSym)
		if err != nil {
			return value.Invalid(), err
		}
		if !ok {
			sym, serr := varSym.SymbolObj()
			if serr != nil {
				return value.Invalid(), serr
			}
			rename = x.Interner.Gensym(".g-" + sym.Name)
			if err := in.PutRename(varSym, rename); err != nil {
				return value.Invalid(), err
			}
		}

		transformerSpec, _ := nth(binding, 1)
		val, err := x.Collab.Eval(transformerSpec, e)
		if err != nil {
			return value.Invalid(), wrapExpand("definition", err)
		}
		if !val.IsProcedure() {
			return value.Invalid(), ErrNotProcedure
		}
		if err := x.Table.Define(rename, &Macro{Senv: e, Transformer: val}); err != nil {
			return value.Invalid(), err
		}
		rest, _ = rest.Cdr()
	}

	body, _ := expr.Cdr()
	body, _ = body.Cdr()
	expandedBody, err := x.ExpandList(body, in)
	if err != nil {
		return value.Invalid(), err
	}
	return x.Heap.AllocPair(x.Table.Keyword(KeywordBegin), expandedBody), nil
}

func list3(h *value.Heap, a, b, c value.Value) value.Value {
	return h.AllocPair(a, h.AllocPair(b, h.AllocPair(c, value.Nil())))
}
