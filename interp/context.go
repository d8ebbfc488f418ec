// Package interp bundles the pieces spec.md §9 says must not be
// process-wide globals — the heap, the symbol intern table, the macro
// table, and the current-library senv tree — into a single struct threaded
// through every entry point (spec.md §5 "Shared resources within an
// instance: the heap, the symbol intern table, the macro table, and the
// library senv tree"). Context is the seam SPEC_FULL.md §5.E anticipated
// as `macro.Expand(ctx *interp.Context, ...)`; it is implemented the other
// way around — Context holds the pieces and builds a macro.Expander on
// demand — so that macro never needs to import interp.
package interp

import (
	"io"
	"os"

	"github.com/dcurrie/picrin/irep"
	"github.com/dcurrie/picrin/macro"
	"github.com/dcurrie/picrin/printer"
	"github.com/dcurrie/picrin/senv"
	"github.com/dcurrie/picrin/value"
)

// Context is one interpreter instance's shared, single-threaded state
// (spec.md §5: "Single-threaded cooperative per interpreter instance...
// All [shared resources] are mutated only from the calling thread").
type Context struct {
	Heap     *value.Heap
	Interner *value.InternTable
	Macros   *macro.Table

	stdout *printer.Session
}

// New creates a Context with a fresh heap, intern table, and macro table
// rooted at a library named rootLibraryName, writing its default port to
// stdout (spec.md §6 "Default port: the current standard output of the
// interpreter").
func New(rootLibraryName string) *Context {
	heap := value.NewHeap()
	interner := value.NewInternTable(heap)
	rootName := interner.Intern(rootLibraryName)
	return &Context{
		Heap:     heap,
		Interner: interner,
		Macros:   macro.NewTable(interner, rootName),
		stdout:   printer.NewSession(os.Stdout),
	}
}

// CurrentSenv returns the senv of the currently active library (spec.md
// §6 "macroexpand(expr) — expands against the current library's senv").
func (c *Context) CurrentSenv() *senv.SEnv {
	return c.Macros.Library().Senv
}

// Expander builds a macro.Expander bound to this context's heap, intern
// table, and macro table, with collab plugged in as the compiler/VM
// boundary (macro.Collaborators) that expansion of define-syntax,
// let-syntax, define-library, and macro application all need.
func (c *Context) Expander(collab macro.Collaborators) *macro.Expander {
	return macro.New(c.Heap, c.Interner, c.Macros, collab)
}

// Expand expands expr against the current library's senv (spec.md §6's
// macroexpand entry point).
func (c *Context) Expand(expr value.Value, collab macro.Collaborators) (value.Value, error) {
	return c.Expander(collab).Expand(expr, c.CurrentSenv())
}

// Gensym returns a fresh uninterned symbol (spec.md §6 gensym(), skeleton
// ".g").
func (c *Context) Gensym() value.Value {
	return c.Interner.Gensym(".g")
}

// IdentifierP reports whether x is a hygienic identifier (spec.md §6
// identifier?(x)).
func (c *Context) IdentifierP(x value.Value) bool {
	return senv.IdentifierP(x)
}

// IdentifierEqual reports whether x under e1 and y under e2 resolve to the
// same binding (spec.md §6 identifier=?(e1, x, e2, y)).
func (c *Context) IdentifierEqual(e1 *senv.SEnv, x value.Value, e2 *senv.SEnv, y value.Value) (bool, error) {
	return senv.IdentifierEqual(e1, x, e2, y, c.Interner)
}

// MakeIdentifier resolves sym's rename chain starting at e (spec.md §6
// make-identifier(sym, senv)).
func (c *Context) MakeIdentifier(sym value.Value, e *senv.SEnv) (value.Value, error) {
	return senv.MakeIdentifier(sym, e, c.Interner)
}

// Serialize encodes v per spec.md §4.F and wraps the result as a blob
// value (spec.md §6 serialize(value) -> byte-vector).
func (c *Context) Serialize(v value.Value) (value.Value, error) {
	blob, err := irep.Encode(v)
	if err != nil {
		return value.Invalid(), err
	}
	return c.Heap.AllocBlob(blob), nil
}

// Deserialize decodes a blob value per spec.md §4.F (spec.md §6
// deserialize(blob) -> value).
func (c *Context) Deserialize(blob value.Value) (value.Value, error) {
	b, err := blob.BlobBytes()
	if err != nil {
		return value.Invalid(), err
	}
	return irep.Decode(c.Heap, c.Interner, b)
}

// Write writes v to the context's default port (stdout) in write mode
// with scoped sharing detection (spec.md §6 write(value, port?)). Port,
// when given, overrides the default for this call only.
func (c *Context) Write(v value.Value, port ...io.Writer) error {
	return c.print(v, printer.Options{Escape: printer.EscapeWrite, Sharing: printer.SharingScoped}, port)
}

// WriteShared writes v labeling every object reached more than once from
// the root, with sharing state that persists across calls to the context's
// default port until the next Write or Display on it clears that state
// (spec.md §6 write-shared(value, port?)).
func (c *Context) WriteShared(v value.Value, port ...io.Writer) error {
	return c.print(v, printer.Options{Escape: printer.EscapeWrite, Sharing: printer.SharingPersistent}, port)
}

// WriteSimple writes v performing no sharing analysis (spec.md §6
// write-simple(value, port?)).
func (c *Context) WriteSimple(v value.Value, port ...io.Writer) error {
	return c.print(v, printer.Options{Escape: printer.EscapeWrite, Sharing: printer.SharingNone}, port)
}

// Display writes v in display mode (spec.md §6 display(value, port?)).
func (c *Context) Display(v value.Value, port ...io.Writer) error {
	return c.print(v, printer.Options{Escape: printer.EscapeDisplay, Sharing: printer.SharingScoped}, port)
}

func (c *Context) print(v value.Value, opts printer.Options, port []io.Writer) error {
	if len(port) > 0 && port[0] != nil {
		return printer.NewSession(port[0]).Print(v, opts)
	}
	return c.stdout.Print(v, opts)
}
