package value

import "testing"

func Test_AttrMapIdentityKeyed(t *testing.T) {
	h := NewHeap()
	m := NewAttrMap()

	p1 := h.AllocPair(Int(1), Nil())
	p2 := h.AllocPair(Int(1), Nil()) // structurally equal, distinct identity

	m.Set(p1, "first")
	if m.Has(p2) {
		t.Fatal("AttrMap must key on identity, not structural equality")
	}
	val, ok := m.Get(p1)
	if !ok || val != "first" {
		t.Fatalf("Get(p1) = (%v, %v), want (first, true)", val, ok)
	}

	m.Del(p1)
	if m.Has(p1) {
		t.Fatal("Del did not remove the entry")
	}
}

func Test_AttrMapImmediateKeyIsNoop(t *testing.T) {
	m := NewAttrMap()
	m.Set(Int(1), "x") // immediates have no identity; Set/Get must no-op safely
	if m.Has(Int(1)) {
		t.Fatal("immediates must never be stored in an AttrMap")
	}
}

func Test_AttrMapPrune(t *testing.T) {
	h := NewHeap()
	m := NewAttrMap()
	live := h.AllocPair(Int(1), Nil())
	dead := h.AllocPair(Int(2), Nil())
	m.Set(live, true)
	m.Set(dead, true)

	deadObj := identityKey(dead)
	m.Prune(func(key any) bool { return key != deadObj })

	if !m.Has(live) {
		t.Fatal("Prune removed a live entry")
	}
	if m.Has(dead) {
		t.Fatal("Prune did not remove the dead entry")
	}
}
