package value

// Header is the object metadata every heap object embeds: its tag (so code
// holding a heapObject can recover the concrete variant without a type
// switch over every possible Go type) and the mark bit an external
// mark-sweep collector flips during a trace. Header is opaque outside the
// allocator and the collector; core code never reads mark directly.
type Header struct {
	tag    Tag
	mark   bool
	weak   bool // true for objects that back an AttrMap, so the collector
	// can special-case weak-held entries during a sweep (mirrors
	// original_source/lib/object.h's weak bit).
}

// Tag returns the object's variant tag.
func (h *Header) Tag() Tag { return h.tag }

// heapObject is implemented by every concrete object type (*Symbol, *Str,
// *Blob, *Pair, *Vector, *Dict, *AttrTable, *Procedure, *Port, *ErrorObj,
// *Record, *IRep, *Frame, *Data). It lets Value.obj hold any of them while
// still exposing the shared header.
type heapObject interface {
	header() *Header
}

func (s *Symbol) header() *Header    { return &s.Header }
func (s *Str) header() *Header       { return &s.Header }
func (b *Blob) header() *Header      { return &b.Header }
func (p *Pair) header() *Header      { return &p.Header }
func (v *Vector) header() *Header    { return &v.Header }
func (d *Dict) header() *Header      { return &d.Header }
func (a *AttrTable) header() *Header { return &a.Header }
func (p *Procedure) header() *Header { return &p.Header }
func (p *Port) header() *Header      { return &p.Header }
func (e *ErrorObj) header() *Header  { return &e.Header }
func (r *Record) header() *Header    { return &r.Header }
func (i *IRep) header() *Header      { return &i.Header }
func (f *Frame) header() *Header     { return &f.Header }
func (d *Data) header() *Header      { return &d.Header }

// Symbol owns an interned name. Two symbols built from equal strings via
// the same InternTable are the same *Symbol (spec.md invariant #1).
type Symbol struct {
	Header
	Name     string
	Uninterned bool // true for gensyms: identifier? is true exactly for these
}

// Str is an immutable Scheme string.
type Str struct {
	Header
	Bytes string
}

// Blob is an immutable byte vector.
type Blob struct {
	Header
	Bytes []byte
}

// Pair is a mutable cons cell.
type Pair struct {
	Header
	Car, Cdr Value
}

// Vector is a mutable, length-fixed array of Values.
type Vector struct {
	Header
	Slots []Value
}

// Dict is a symbol-keyed map with stable, insertion-ordered iteration
// (spec.md §3: "stable iteration is required for reproducible printing").
// Backed by parallel append-only slices rather than a Go map so that
// iteration order never depends on map-randomization.
type Dict struct {
	Header
	keys []Value // TagSymbol values
	vals []Value
}

// AttrTable is the heap-object variant of the weak/attribute map
// (component B), addressable as an ordinary Value like any other object.
type AttrTable struct {
	Header
	Map *AttrMap
}

// NativeFunc is a host-implemented procedure body.
type NativeFunc func(args []Value) (Value, error)

// Procedure is either a native function or an IRep closure. Exactly one of
// Native or IRep is non-nil.
type Procedure struct {
	Header
	Name   string
	Native NativeFunc
	IRep   *IRep
	Env    *Frame // captured environment; nil for a native or top-level closure
}

// Port is a sink/source for the printer and reader (the reader itself is
// out of scope; Port is the interface boundary both would share).
type Port struct {
	Header
	Name string
	W    writerCloser
}

// writerCloser narrows io.Writer to the subset the printer actually needs,
// avoiding an import of io in this file.
type writerCloser interface {
	Write(p []byte) (int, error)
}

// ErrorObj is a raised error value: kind ("type-error", "syntax-error", ...)
// plus message and irritants, per spec.md §7.
type ErrorObj struct {
	Header
	Kind      string
	Message   string
	Irritants []Value
}

// Record is a user-defined record: a type name plus payload.
type Record struct {
	Header
	TypeName string
	Datum    Value
}

// Frame is a closure's captured environment (spec.md §3 "context"),
// distinct from package senv's compile-time syntactic environment.
type Frame struct {
	Header
	Parent *Frame
	Slots  []Value
}

// Data is an opaque foreign-owned payload the core never interprets.
type Data struct {
	Header
	Ptr any
}
