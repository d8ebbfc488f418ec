package senv

import "github.com/dcurrie/picrin/value"

// SEnv is a syntactic environment: a parent pointer plus a rename table
// (spec.md §3/§4.D). The zero value is not usable; construct with New.
type SEnv struct {
	parent *SEnv
	rename map[*value.Symbol]value.Value
}

// InternTable is the narrow interface SEnv needs from value.InternTable,
// kept local so this package does not need to know about heaps directly.
type InternTable interface {
	Gensym(skeleton string) value.Value
}

// New creates an empty syntactic environment chained to parent. parent may
// be nil for a root senv.
func New(parent *SEnv) *SEnv {
	return &SEnv{parent: parent, rename: make(map[*value.Symbol]value.Value)}
}

// Parent returns e's parent senv, or nil at the root.
func (e *SEnv) Parent() *SEnv { return e.parent }

func symObj(sym value.Value) (*value.Symbol, error) {
	return sym.SymbolObj()
}

// PutRename binds sym to rsym in e's own rename table (not the chain).
func (e *SEnv) PutRename(sym, rsym value.Value) error {
	s, err := symObj(sym)
	if err != nil {
		return err
	}
	e.rename[s] = rsym
	return nil
}

// FindRename looks up sym in e's own rename table only (spec.md §4.D:
// "lookup in this senv only"). Uninterned symbols always resolve to
// themselves, successfully, regardless of any binding.
func (e *SEnv) FindRename(sym value.Value) (value.Value, bool, error) {
	s, err := symObj(sym)
	if err != nil {
		return value.Invalid(), false, err
	}
	if s.Uninterned {
		return sym, true, nil
	}
	if rsym, ok := e.rename[s]; ok {
		return rsym, true, nil
	}
	return value.Invalid(), false, nil
}

// MakeIdentifier walks e's parent chain looking for a binding of sym; if
// none binds it, a fresh gensym of sym is returned (spec.md §4.D). The
// gensym is *not* installed in any rename table — callers that want the
// rename to be visible to future lookups in e must PutRename it
// themselves (lambda/define do this explicitly).
func MakeIdentifier(sym value.Value, e *SEnv, interner InternTable) (value.Value, error) {
	for cur := e; cur != nil; cur = cur.parent {
		if rsym, ok, err := cur.FindRename(sym); err != nil {
			return value.Invalid(), err
		} else if ok {
			return rsym, nil
		}
	}
	name, err := sym.SymName()
	if err != nil {
		return value.Invalid(), err
	}
	return interner.Gensym(".g-" + name), nil
}

// IdentifierP reports whether x is an identifier: a symbol that is not
// interned (spec.md §4.D "identifier?: a symbol that is not interned").
func IdentifierP(x value.Value) bool {
	if !x.IsSymbol() {
		return false
	}
	u, err := x.SymIsUninterned()
	return err == nil && u
}

// IdentifierEqual implements identifier=?: make_identifier(x, e1) ==
// make_identifier(y, e2) by symbol identity (spec.md §4.D/§6).
func IdentifierEqual(e1 *SEnv, x value.Value, e2 *SEnv, y value.Value, interner InternTable) (bool, error) {
	rx, err := MakeIdentifier(x, e1, interner)
	if err != nil {
		return false, err
	}
	ry, err := MakeIdentifier(y, e2, interner)
	if err != nil {
		return false, err
	}
	return value.Identical(rx, ry), nil
}
