package macro

import (
	"github.com/dcurrie/picrin/senv"
	"github.com/dcurrie/picrin/value"
)

// Keyword names the eight special forms spec.md §4.E dispatches on, plus
// "begin", the rewrite target let-syntax expands into. Grounded on
// original_source/src/macro.c's pic->rQUOTE/rIMPORT/.../rBEGIN canonical
// renames, which the compiler (out of scope here) consults downstream.
type Keyword string

const (
	KeywordQuote         Keyword = "quote"
	KeywordImport        Keyword = "import"
	KeywordExport        Keyword = "export"
	KeywordDefineLibrary Keyword = "define-library"
	KeywordLambda        Keyword = "lambda"
	KeywordDefine        Keyword = "define"
	KeywordDefineSyntax  Keyword = "define-syntax"
	KeywordLetSyntax     Keyword = "let-syntax"
	KeywordBegin         Keyword = "begin"
)

var specialFormKeywords = []Keyword{
	KeywordDefineLibrary, KeywordImport, KeywordExport,
	KeywordDefineSyntax, KeywordLetSyntax, KeywordLambda,
	KeywordDefine, KeywordQuote,
}

var allKeywords = append(append([]Keyword{}, specialFormKeywords...), KeywordBegin)

// Macro pairs a transformer procedure with the senv captured at definition
// time (spec.md §3 "a pair (capture senv or none for legacy macros,
// transformer procedure)"). Senv is nil for a legacy (non-hygienic) macro,
// which receives only its call-site argument list instead of
// (form, use-senv, def-senv).
type Macro struct {
	Senv        *senv.SEnv
	Transformer value.Value
}

// Library bundles the senv a define-library form expands its body in with
// the import/export bookkeeping spec.md §4.E's import/export special forms
// mutate. Unlike the rest of a module system (name resolution, linking),
// which is out of scope (spec.md §1), Library only records what the two
// special forms are specified to do: append raw import specs, and record
// an outward-visible name for a symbol's rename in Senv (or for the
// symbol itself when Senv does not bind it).
type Library struct {
	Name    value.Value
	Senv    *senv.SEnv
	Imports []value.Value           // raw specs, recorded verbatim (resolution is external)
	Exports map[string]value.Value // outer name -> exported identifier
}

func newLibrary(name value.Value, parent *senv.SEnv) *Library {
	return &Library{
		Name:    name,
		Senv:    senv.New(parent),
		Exports: make(map[string]value.Value),
	}
}

// Export records that sym, known inside lib by its current rename (or
// itself if unbound), is visible to importers under the name as. Grounded
// on original_source/src/macro.c's pic_export_as, minus the cross-library
// linkage that function performs (out of scope).
func (lib *Library) Export(sym, as value.Value) error {
	rename, ok, err := lib.Senv.FindRename(sym)
	if err != nil {
		return err
	}
	if !ok {
		rename = sym
	}
	name, err := as.SymName()
	if err != nil {
		return err
	}
	lib.Exports[name] = rename
	return nil
}

// Table is the process-wide-in-spirit-but-context-owned mapping from
// rename to macro, plus the current-library stack (spec.md §4.E "State").
// Per spec.md §9 ("bundle into a single interpreter-context struct... no
// process-wide globals"), Table is never a package-level singleton; it is
// constructed once per interp.Context and threaded through every Expand
// call, the same way this plan's senv/printer packages take their state
// explicitly rather than reaching for a global.
type Table struct {
	macros       map[*value.Symbol]*Macro
	specialForms map[*value.Symbol]Keyword
	keywords     map[Keyword]value.Value // keyword name -> canonical rename symbol
	libStack     []*Library
}

// NewTable creates a Table with a fresh root library named rootName, whose
// senv has the eight special-form keywords (plus "begin") pre-bound to
// themselves — an identity rename, mirroring
// original_source/src/macro.c's pic_null_syntactic_environment wiring
// define-library/import/export (and, here, the rest of the spec's special
// forms) into a library's senv at creation.
func NewTable(interner *value.InternTable, rootName value.Value) *Table {
	t := &Table{
		macros:       make(map[*value.Symbol]*Macro),
		specialForms: make(map[*value.Symbol]Keyword),
		keywords:     make(map[Keyword]value.Value),
	}
	root := newLibrary(rootName, nil)
	t.libStack = []*Library{root}

	for _, kw := range allKeywords {
		sym := interner.Intern(string(kw))
		_ = root.Senv.PutRename(sym, sym)
		t.keywords[kw] = sym
		if kw != KeywordBegin {
			sObj, _ := sym.SymbolObj()
			t.specialForms[sObj] = kw
		}
	}
	return t
}

// Library returns the currently active library (the expansion root).
func (t *Table) Library() *Library { return t.libStack[len(t.libStack)-1] }

// PushLibrary enters child as the current library, returning it. Paired
// with PopLibrary around a define-library body (spec.md §4.E: "restore the
// previous library on success or failure").
func (t *Table) PushLibrary(name value.Value) *Library {
	child := newLibrary(name, nil)
	for _, kw := range allKeywords {
		sym := t.keywords[kw]
		_ = child.Senv.PutRename(sym, sym)
	}
	t.libStack = append(t.libStack, child)
	return child
}

// PopLibrary restores the previous current library.
func (t *Table) PopLibrary() {
	t.libStack = t.libStack[:len(t.libStack)-1]
}

// Keyword returns the canonical rename symbol for kw (used by special-form
// handlers to re-emit their head with the rename rather than the original
// symbol, e.g. macroexpand_quote's `cons(rQUOTE, cdr)`).
func (t *Table) Keyword(kw Keyword) value.Value { return t.keywords[kw] }

// SpecialForm reports whether rename is the canonical rename of one of the
// eight dispatchable special forms, and which one.
func (t *Table) SpecialForm(rename value.Value) (Keyword, bool) {
	sym, err := rename.SymbolObj()
	if err != nil {
		return "", false
	}
	kw, ok := t.specialForms[sym]
	return kw, ok
}

// Define installs a macro under rename (spec.md's define_macro). An
// existing definition under the same rename is overwritten, matching
// original_source/src/macro.c's define_macro (xh_put_int unconditionally
// overwrites).
func (t *Table) Define(rename value.Value, m *Macro) error {
	sym, err := rename.SymbolObj()
	if err != nil {
		return err
	}
	t.macros[sym] = m
	return nil
}

// Lookup returns the macro installed under rename, if any.
func (t *Table) Lookup(rename value.Value) (*Macro, bool) {
	sym, err := rename.SymbolObj()
	if err != nil {
		return nil, false
	}
	m, ok := t.macros[sym]
	return m, ok
}
