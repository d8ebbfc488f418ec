package printer

import (
	"testing"

	"github.com/dcurrie/picrin/value"
)

func Test_TraverseAllMarksDAGSharing(t *testing.T) {
	h := value.NewHeap()
	a := h.AllocPair(value.Int(1), h.AllocPair(value.Int(2), value.Nil()))
	b := h.AllocPair(a, h.AllocPair(a, value.Nil()))

	seen := value.NewAttrMap()
	traverseAll(seen, b)

	if !isShared(seen, a) {
		t.Fatal("traverseAll must mark a reached twice as shared")
	}
	if isShared(seen, b) {
		t.Fatal("b is reached only once and must not be marked shared")
	}
}

func Test_TraverseAllMarksSelfReference(t *testing.T) {
	h := value.NewHeap()
	x := h.AllocPair(value.Int(1), value.Nil())
	if err := x.SetCdr(x); err != nil {
		t.Fatal(err)
	}

	seen := value.NewAttrMap()
	traverseAll(seen, x)

	if !isShared(seen, x) {
		t.Fatal("traverseAll must mark a self-referential pair as shared")
	}
}

func Test_ShareableExcludesImmediatesAndSymbols(t *testing.T) {
	h := value.NewHeap()
	sym := h.AllocSymbol("x", false)
	if shareable(value.Int(1)) {
		t.Fatal("immediates are never shareable")
	}
	if shareable(sym) {
		t.Fatal("symbols are never shareable (permanently interned)")
	}
	pair := h.AllocPair(value.Int(1), value.Nil())
	if !shareable(pair) {
		t.Fatal("pairs must be shareable")
	}
}
