package value

import (
	"errors"
	"testing"
)

func Test_ImmediatePredicates(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want Tag
	}{
		{"nil", Nil(), TagNil},
		{"true", True(), TagTrue},
		{"false", False(), TagFalse},
		{"int", Int(42), TagInt},
		{"float", Float(3.5), TagFloat},
		{"char", Char('x'), TagChar},
		{"eof", EOF(), TagEOF},
		{"undefined", Undefined(), TagUndefined},
		{"invalid", Invalid(), TagInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Tag() != tt.want {
				t.Fatalf("Tag() = %v, want %v", tt.v.Tag(), tt.want)
			}
		})
	}
}

func Test_Truthy(t *testing.T) {
	if False().Truthy() {
		t.Fatal("#f must not be truthy")
	}
	for _, v := range []Value{Nil(), True(), Int(0), Int(1)} {
		if !v.Truthy() {
			t.Fatalf("%v should be truthy (only #f is falsy)", v)
		}
	}
}

func Test_AccessorTypeErrors(t *testing.T) {
	_, err := Int(1).Car()
	if err == nil {
		t.Fatal("expected type error calling Car on an integer")
	}
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TypeError, got %T: %v", err, err)
	}
}

func Test_VecRefOutOfRange(t *testing.T) {
	h := NewHeap()
	v := h.AllocVector(3)
	if _, err := v.VecRef(-1); err != ErrIndexRange {
		t.Fatalf("want ErrIndexRange, got %v", err)
	}
	if _, err := v.VecRef(3); err != ErrIndexRange {
		t.Fatalf("want ErrIndexRange, got %v", err)
	}
	if err := v.VecSet(0, Int(9)); err != nil {
		t.Fatal(err)
	}
	got, err := v.VecRef(0)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := got.AsInt(); n != 9 {
		t.Fatalf("got %v, want 9", n)
	}
}

func Test_PairMutation(t *testing.T) {
	h := NewHeap()
	p := h.AllocPair(Int(1), Int(2))
	if err := p.SetCdr(Int(3)); err != nil {
		t.Fatal(err)
	}
	cdr, err := p.Cdr()
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := cdr.AsInt(); n != 3 {
		t.Fatalf("got %v, want 3", n)
	}
}

func Test_SelfReferentialPairIdentity(t *testing.T) {
	h := NewHeap()
	p := h.AllocPair(Int(1), Nil())
	if err := p.SetCdr(p); err != nil {
		t.Fatal(err)
	}
	cdr, err := p.Cdr()
	if err != nil {
		t.Fatal(err)
	}
	if !Identical(p, cdr) {
		t.Fatal("expected self-referential pair's cdr to be identical to itself")
	}
}

func Test_DictOrderPreserved(t *testing.T) {
	h := NewHeap()
	d := h.AllocDict()
	a, b, c := h.AllocSymbol("a", false), h.AllocSymbol("b", false), h.AllocSymbol("c", false)
	for _, k := range []Value{a, b, c} {
		if err := d.DictSet(k, Int(1)); err != nil {
			t.Fatal(err)
		}
	}
	var seen []string
	err := d.DictEach(func(k, _ Value) error {
		name, err := k.SymName()
		if err != nil {
			return err
		}
		seen = append(seen, name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

func Test_NanBoxRoundTrip(t *testing.T) {
	h := NewHeap()
	ht := NewHandleTable()
	vals := []Value{
		Nil(), True(), False(), Int(-7), Char('Q'), EOF(), Undefined(), Invalid(),
		Float(1.5), Float(-1.5),
		h.AllocSymbol("foo", false),
		h.AllocPair(Int(1), Int(2)),
	}
	for _, v := range vals {
		nb := ToNanBox(v, ht)
		got := FromNanBox(nb, ht)
		if got.Tag() != v.Tag() {
			t.Fatalf("tag mismatch: got %v want %v", got.Tag(), v.Tag())
		}
		if !v.Tag().IsImmediate() {
			if !Identical(got, v) {
				t.Fatalf("object identity not preserved across NanBox round-trip")
			}
		}
	}
}
