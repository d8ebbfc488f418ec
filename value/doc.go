// Package value implements the tagged value universe and heap object model
// that every other core package (senv, printer, macro, irep) builds on.
//
// # Overview
//
// A Value is either an immediate (nil, booleans, small integers, floats,
// characters, eof, undefined, invalid) or a reference into the heap
// (symbol, string, blob, pair, vector, dict, attribute table, procedure,
// port, error, record, irep, context, opaque data). Immediates carry their
// payload inline; heap variants carry a pointer to their heap object
// (*Symbol, *Pair, ... — see object.go).
//
// Two Value encodings are supported behind the same accessor contract:
// the default tagged-struct Value in value.go, and the optional NaN-boxed
// NanBox in nanbox.go. Callers that only use the exported constructors,
// predicates, and accessors never need to know which is in play.
//
// # Heap and interning
//
// Heap objects are allocated through a single entry point, *Heap and its
// per-variant Alloc* methods, a paged bump allocator (heap.go). Symbols are
// interned through *InternTable (intern.go): two symbols built from equal
// strings are the same *Symbol, permanently, for the lifetime of the table.
//
// # Attribute maps
//
// *AttrMap (attrmap.go) is an object-identity-keyed scratch map used by the
// printer for cycle/sharing detection and available generally wherever a
// caller needs to tag visited objects without touching object headers.
package value
