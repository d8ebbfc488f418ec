package value

import "testing"

func Test_InternIsTotalAndPermanent(t *testing.T) {
	h := NewHeap()
	tbl := NewInternTable(h)

	a := tbl.Intern("hello")
	b := tbl.Intern("hello")
	if !Identical(a, b) {
		t.Fatal("interning the same name twice must yield identical symbols")
	}

	c := tbl.Intern("world")
	if Identical(a, c) {
		t.Fatal("interning different names must yield distinct symbols")
	}
}

func Test_LookupDoesNotCreate(t *testing.T) {
	h := NewHeap()
	tbl := NewInternTable(h)
	if _, ok := tbl.Lookup("nope"); ok {
		t.Fatal("Lookup must not find an uninterned name")
	}
	if tbl.Len() != 0 {
		t.Fatalf("Lookup must not create an entry, Len()=%d", tbl.Len())
	}
}

func Test_GensymProducesUninternedDistinctSymbols(t *testing.T) {
	h := NewHeap()
	tbl := NewInternTable(h)

	g1 := tbl.Gensym(".g")
	g2 := tbl.Gensym(".g")

	if Identical(g1, g2) {
		t.Fatal("two gensyms must be distinct")
	}
	if u, _ := g1.SymIsUninterned(); !u {
		t.Fatal("gensym must be uninterned")
	}
	if tbl.Len() != 0 {
		t.Fatalf("gensyms must never populate the intern table, Len()=%d", tbl.Len())
	}
}
