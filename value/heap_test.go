package value

import "testing"

func Test_HeapPreserveRestore(t *testing.T) {
	h := NewHeap()
	mark := h.Preserve()
	for i := 0; i < pageSize*3+5; i++ {
		h.AllocPair(Int(int64(i)), Nil())
	}
	if h.RootCount() != mark+pageSize*3+5 {
		t.Fatalf("unexpected root count: %d", h.RootCount())
	}
	h.Restore(mark)
	if h.RootCount() != mark {
		t.Fatalf("Restore did not reset root count: got %d want %d", h.RootCount(), mark)
	}
	// Further allocations after Restore must still succeed and grow pages.
	v := h.AllocPair(Int(1), Int(2))
	if !v.IsPair() {
		t.Fatal("expected a pair after Restore")
	}
}

func Test_HeapGrowsAcrossPageBoundary(t *testing.T) {
	h := NewHeap()
	for i := 0; i < pageSize+1; i++ {
		h.AllocVector(0)
	}
	if len(h.pages) < 2 {
		t.Fatalf("expected heap to grow to at least 2 pages, got %d", len(h.pages))
	}
}
