// Package senv implements syntactic environments: the nested, lexically
// chained rename tables the macro expander uses to hygienically rename
// identifiers (spec.md §4.D).
//
// A SEnv is a parent pointer plus a rename table from symbol to renamed
// symbol. Lookups walk the chain outward from the innermost scope;
// PutRename only ever mutates the scope it is called on. Uninterned
// (gensym) symbols always resolve to themselves, since they are already
// unique — a rename would do nothing useful and would break identity.
//
// This mirrors hive/subkeys' chained-list-of-lists lookup shape (direct
// lists, then indirect RI blocks) — here, an in-memory parent chain
// instead of an on-disk indirection chain.
package senv
