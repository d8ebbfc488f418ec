package printer

import (
	"strings"
	"testing"

	"github.com/dcurrie/picrin/value"
)

func Test_SelfReferentialPairWrite(t *testing.T) {
	h := value.NewHeap()
	x := h.AllocPair(value.Int(1), value.Nil())
	if err := x.SetCdr(x); err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := Write(x, &b); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "#0=(1 . #0#)"; got != want {
		t.Fatalf("Write self-referential pair = %q, want %q", got, want)
	}
}

func Test_DAGSharingWriteShared(t *testing.T) {
	h := value.NewHeap()
	a := h.AllocPair(value.Int(1), h.AllocPair(value.Int(2), value.Nil()))
	b := h.AllocPair(a, h.AllocPair(a, value.Nil()))

	var w strings.Builder
	if err := WriteShared(b, &w); err != nil {
		t.Fatal(err)
	}
	if got, want := w.String(), "(#0=(1 2) #0#)"; got != want {
		t.Fatalf("WriteShared DAG = %q, want %q", got, want)
	}

	// Plain write labels the same way: spec.md invariant #4 requires a
	// label wherever a subobject is reached two or more times from the
	// root, DAG sharing included, not just true cycles. Write and
	// WriteShared differ only in whether the Session's scratch state
	// persists across later Print calls, not in this per-call analysis.
	var w2 strings.Builder
	if err := Write(b, &w2); err != nil {
		t.Fatal(err)
	}
	if got, want := w2.String(), "(#0=(1 2) #0#)"; got != want {
		t.Fatalf("Write DAG = %q, want %q", got, want)
	}
}

func Test_DisplayVsWriteEscaping(t *testing.T) {
	h := value.NewHeap()
	s := h.AllocString(`a"b`)

	var w strings.Builder
	if err := Write(s, &w); err != nil {
		t.Fatal(err)
	}
	if got, want := w.String(), `"a\"b"`; got != want {
		t.Fatalf("Write string = %q, want %q", got, want)
	}

	var d strings.Builder
	if err := Display(s, &d); err != nil {
		t.Fatal(err)
	}
	if got, want := d.String(), `a"b`; got != want {
		t.Fatalf("Display string = %q, want %q", got, want)
	}
}

func Test_BlobLiteral(t *testing.T) {
	h := value.NewHeap()
	blob := h.AllocBlob([]byte{0, 1, 255})

	var w strings.Builder
	if err := Write(blob, &w); err != nil {
		t.Fatal(err)
	}
	if got, want := w.String(), "#u8(0 1 255)"; got != want {
		t.Fatalf("Write blob = %q, want %q", got, want)
	}
}

func Test_QuoteSugar(t *testing.T) {
	h := value.NewHeap()
	quote := h.AllocSymbol("quote", false)
	a := h.AllocSymbol("a", false)
	b := h.AllocSymbol("b", false)
	inner := h.AllocPair(a, h.AllocPair(b, value.Nil()))
	quoted := h.AllocPair(quote, h.AllocPair(inner, value.Nil()))

	var w strings.Builder
	if err := Write(quoted, &w); err != nil {
		t.Fatal(err)
	}
	if got, want := w.String(), "'(a b)"; got != want {
		t.Fatalf("Write quoted = %q, want %q", got, want)
	}
}

func Test_FloatFormatting(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{3.0, "3.0"},
		{3.5, "3.5"},
	}
	for _, c := range cases {
		var w strings.Builder
		if err := Write(value.Float(c.f), &w); err != nil {
			t.Fatal(err)
		}
		if got := w.String(); got != c.want {
			t.Fatalf("Write float %v = %q, want %q", c.f, got, c.want)
		}
	}
}

func Test_VectorAndDict(t *testing.T) {
	h := value.NewHeap()
	vec := h.AllocVectorFrom([]value.Value{value.Int(1), value.Int(2)})
	var w strings.Builder
	if err := Write(vec, &w); err != nil {
		t.Fatal(err)
	}
	if got, want := w.String(), "#(1 2)"; got != want {
		t.Fatalf("Write vector = %q, want %q", got, want)
	}

	d := h.AllocDict()
	k := h.AllocSymbol("k", false)
	if err := d.DictSet(k, value.Int(9)); err != nil {
		t.Fatal(err)
	}
	var dw strings.Builder
	if err := Write(d, &dw); err != nil {
		t.Fatal(err)
	}
	if got, want := dw.String(), "#.(dictionary 'k 9)"; got != want {
		t.Fatalf("Write dict = %q, want %q", got, want)
	}
}

func Test_WriteSimpleOnAcyclicValueMatchesWrite(t *testing.T) {
	h := value.NewHeap()
	v := h.AllocPair(value.Int(1), h.AllocPair(value.Int(2), value.Nil()))

	var w strings.Builder
	if err := WriteSimple(v, &w); err != nil {
		t.Fatal(err)
	}
	if got, want := w.String(), "(1 2)"; got != want {
		t.Fatalf("WriteSimple = %q, want %q", got, want)
	}
}

func Test_SessionReuseAcrossCalls(t *testing.T) {
	h := value.NewHeap()
	v1 := h.AllocPair(value.Int(1), value.Nil())
	if err := v1.SetCdr(v1); err != nil {
		t.Fatal(err)
	}
	v2 := h.AllocPair(value.Int(7), value.Nil())
	if err := v2.SetCdr(v2); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	sess := NewSession(&out)
	if err := sess.Print(v1, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if err := sess.Print(v2, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "#0=(1 . #0#)#0=(7 . #0#)"; got != want {
		t.Fatalf("sessions must not leak label state across Print calls: %q, want %q", got, want)
	}
}
