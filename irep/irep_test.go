package irep

import (
	"bytes"
	"testing"

	"github.com/dcurrie/picrin/value"
)

// Test_EncodeInt258 covers spec.md §8 scenario 7: serializing 258 produces
// exactly 00 02 01 00 00.
func Test_EncodeInt258(t *testing.T) {
	got, err := Encode(value.Int(258))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0x02, 0x01, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode(258) = % x, want % x", got, want)
	}
}

// Test_DecodeInt258 covers the other half of scenario 7.
func Test_DecodeInt258(t *testing.T) {
	h := value.NewHeap()
	interner := value.NewInternTable(h)
	got, err := Decode(h, interner, []byte{0x00, 0x02, 0x01, 0x00, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	n, err := got.AsInt()
	if err != nil {
		t.Fatal(err)
	}
	if n != 258 {
		t.Fatalf("Decode = %d, want 258", n)
	}
}

// Test_EncodeSymbolFoo covers spec.md §8 scenario 8: serializing the
// symbol foo produces 02 03 00 00 00 66 6f 6f 00.
func Test_EncodeSymbolFoo(t *testing.T) {
	h := value.NewHeap()
	interner := value.NewInternTable(h)
	got, err := Encode(interner.Intern("foo"))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x02, 0x03, 0x00, 0x00, 0x00, 0x66, 0x6f, 0x6f, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode(foo) = % x, want % x", got, want)
	}
}

func Test_DecodeSymbolFooInterns(t *testing.T) {
	h := value.NewHeap()
	interner := value.NewInternTable(h)
	want := interner.Intern("foo")

	got, err := Decode(h, interner, []byte{0x02, 0x03, 0x00, 0x00, 0x00, 0x66, 0x6f, 0x6f, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Identical(got, want) {
		t.Fatal("decoding a symbol must return the same interned object as Intern (spec.md invariant #1)")
	}
}

// Test_RoundTripString covers spec.md §8 invariant #8 for a string.
func Test_RoundTripString(t *testing.T) {
	h := value.NewHeap()
	interner := value.NewInternTable(h)
	v := h.AllocString("hello, scheme")

	blob, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(h, interner, blob)
	if err != nil {
		t.Fatal(err)
	}
	s, err := got.StrBytes()
	if err != nil {
		t.Fatal(err)
	}
	if s != "hello, scheme" {
		t.Fatalf("round trip = %q, want %q", s, "hello, scheme")
	}
}

// Test_RoundTripChar covers invariant #8 for a character.
func Test_RoundTripChar(t *testing.T) {
	h := value.NewHeap()
	interner := value.NewInternTable(h)
	v := value.Char('A')

	blob, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(h, interner, blob)
	if err != nil {
		t.Fatal(err)
	}
	r, err := got.AsChar()
	if err != nil {
		t.Fatal(err)
	}
	if r != 'A' {
		t.Fatalf("round trip = %q, want %q", r, 'A')
	}
}

// Test_RoundTripIRep covers invariant #8 for a nested IRep with a constant
// pool (including a nested symbol and a child IRep).
func Test_RoundTripIRep(t *testing.T) {
	h := value.NewHeap()
	interner := value.NewInternTable(h)

	childVal := h.AllocIRep()
	child, _ := childVal.IRepObj()
	child.Argc = 1
	child.FrameSize = 2
	child.Code = []byte{0x01, 0x02, 0x03}

	parentVal := h.AllocIRep()
	parent, _ := parentVal.IRepObj()
	parent.Argc = 2
	parent.Flags = value.FlagVariadic
	parent.FrameSize = 4
	parent.ObjectPool = []value.Value{value.Int(42), interner.Intern("bar")}
	parent.Code = []byte{0xaa, 0xbb}
	parent.Nested = []*value.IRep{child}

	blob, err := Encode(parentVal)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(h, interner, blob)
	if err != nil {
		t.Fatal(err)
	}
	ir, err := got.IRepObj()
	if err != nil {
		t.Fatal(err)
	}
	if ir.Argc != 2 || !ir.IsVariadic() || ir.FrameSize != 4 {
		t.Fatalf("decoded IRep header mismatch: %+v", ir)
	}
	if len(ir.ObjectPool) != 2 {
		t.Fatalf("decoded object pool length = %d, want 2", len(ir.ObjectPool))
	}
	n, _ := ir.ObjectPool[0].AsInt()
	if n != 42 {
		t.Fatalf("decoded constant[0] = %d, want 42", n)
	}
	name, _ := ir.ObjectPool[1].SymName()
	if name != "bar" {
		t.Fatalf("decoded constant[1] = %q, want bar", name)
	}
	if !bytes.Equal(ir.Code, []byte{0xaa, 0xbb}) {
		t.Fatalf("decoded code = % x, want aa bb", ir.Code)
	}
	if len(ir.Nested) != 1 || ir.Nested[0].Argc != 1 || !bytes.Equal(ir.Nested[0].Code, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("decoded nested IRep mismatch: %+v", ir.Nested)
	}
}

func Test_DecodeTrailingBytesRejected(t *testing.T) {
	h := value.NewHeap()
	interner := value.NewInternTable(h)
	blob := append([]byte{0x00, 0x01, 0x00, 0x00, 0x00}, 0xff)
	if _, err := Decode(h, interner, blob); err != ErrTrailingBytes {
		t.Fatalf("expected ErrTrailingBytes, got %v", err)
	}
}

func Test_EncodeNativeProcedureRejected(t *testing.T) {
	h := value.NewHeap()
	v := h.AllocNativeProcedure("car", func(args []value.Value) (value.Value, error) {
		return value.Nil(), nil
	})
	if _, err := Encode(v); err != ErrNativeProcedure {
		t.Fatalf("expected ErrNativeProcedure, got %v", err)
	}
}

func Test_ArchiveRoundTrip(t *testing.T) {
	h := value.NewHeap()
	interner := value.NewInternTable(h)
	a, err := Encode(value.Int(1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(interner.Intern("baz"))
	if err != nil {
		t.Fatal(err)
	}

	archive, err := PackArchive([][]byte{a, b})
	if err != nil {
		t.Fatal(err)
	}
	blobs, err := UnpackArchive(archive)
	if err != nil {
		t.Fatal(err)
	}
	if len(blobs) != 2 || !bytes.Equal(blobs[0], a) || !bytes.Equal(blobs[1], b) {
		t.Fatalf("archive round trip mismatch: %v", blobs)
	}
}
