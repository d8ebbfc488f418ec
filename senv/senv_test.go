package senv

import (
	"testing"

	"github.com/dcurrie/picrin/value"
)

type testInterner struct {
	heap *value.Heap
	tbl  *value.InternTable
}

func newTestInterner() *testInterner {
	h := value.NewHeap()
	return &testInterner{heap: h, tbl: value.NewInternTable(h)}
}

func (i *testInterner) Gensym(skeleton string) value.Value { return i.tbl.Gensym(skeleton) }
func (i *testInterner) Intern(name string) value.Value     { return i.tbl.Intern(name) }

func Test_FindRenameLocalOnly(t *testing.T) {
	in := newTestInterner()
	root := New(nil)
	child := New(root)

	x := in.Intern("x")
	rx := in.Intern("x-renamed")
	if err := root.PutRename(x, rx); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := child.FindRename(x); err != nil || ok {
		t.Fatalf("FindRename must not see parent bindings: ok=%v err=%v", ok, err)
	}
	got, ok, err := root.FindRename(x)
	if err != nil || !ok {
		t.Fatalf("FindRename on root failed: ok=%v err=%v", ok, err)
	}
	if !value.Identical(got, rx) {
		t.Fatal("FindRename returned the wrong rename")
	}
}

func Test_MakeIdentifierWalksChainAndGensyms(t *testing.T) {
	in := newTestInterner()
	root := New(nil)
	child := New(root)

	x := in.Intern("x")
	rx := in.Intern("x-renamed")
	if err := root.PutRename(x, rx); err != nil {
		t.Fatal(err)
	}

	got, err := MakeIdentifier(x, child, in)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Identical(got, rx) {
		t.Fatal("MakeIdentifier should find the parent's binding")
	}

	y := in.Intern("y")
	fresh, err := MakeIdentifier(y, child, in)
	if err != nil {
		t.Fatal(err)
	}
	if !IdentifierP(fresh) {
		t.Fatal("an unbound identifier must resolve to a gensym")
	}
}

func Test_IdentifierEqual(t *testing.T) {
	in := newTestInterner()
	e := New(nil)
	x := in.Intern("x")

	eq, err := IdentifierEqual(e, x, e, x, in)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Fatal("identifier=? must be true for the same symbol in the same senv (spec.md invariant #6)")
	}
}

func Test_UninternedResolvesToItself(t *testing.T) {
	in := newTestInterner()
	e := New(nil)
	g := in.Gensym(".g")

	got, ok, err := e.FindRename(g)
	if err != nil || !ok {
		t.Fatalf("uninterned symbol lookup must always succeed: ok=%v err=%v", ok, err)
	}
	if !value.Identical(got, g) {
		t.Fatal("uninterned symbol must resolve to itself")
	}
}
