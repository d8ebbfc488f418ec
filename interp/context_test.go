package interp

import (
	"strings"
	"testing"

	"github.com/dcurrie/picrin/macro"
	"github.com/dcurrie/picrin/senv"
	"github.com/dcurrie/picrin/value"
)

type stubCollaborators struct{}

func (stubCollaborators) Eval(expr value.Value, e *senv.SEnv) (value.Value, error) {
	return value.Undefined(), nil
}
func (stubCollaborators) ApplyLegacyMacro(proc, args value.Value) (value.Value, error) {
	return value.Undefined(), nil
}
func (stubCollaborators) ApplyHygienicMacro(proc, form value.Value, useSenv, defSenv *senv.SEnv) (value.Value, error) {
	return value.Undefined(), nil
}
func (stubCollaborators) Import(spec value.Value, lib *macro.Library) error { return nil }

func Test_ContextExpandUsesCurrentLibrarySenv(t *testing.T) {
	ctx := New("test")
	xSym := ctx.Interner.Intern("x")
	lambdaSym := ctx.Macros.Keyword(macro.KeywordLambda)
	formals := ctx.Heap.AllocPair(xSym, value.Nil())
	form := ctx.Heap.AllocPair(lambdaSym, ctx.Heap.AllocPair(formals, ctx.Heap.AllocPair(xSym, value.Nil())))

	got, err := ctx.Expand(form, stubCollaborators{})
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsPair() {
		t.Fatalf("expected a pair, got %v", got.Tag())
	}
}

func Test_ContextGensymIsIdentifier(t *testing.T) {
	ctx := New("test")
	g := ctx.Gensym()
	if !ctx.IdentifierP(g) {
		t.Fatal("Gensym's result must satisfy identifier?")
	}
}

func Test_ContextSerializeDeserializeRoundTrip(t *testing.T) {
	ctx := New("test")
	v := value.Int(258)

	blob, err := ctx.Serialize(v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ctx.Deserialize(blob)
	if err != nil {
		t.Fatal(err)
	}
	n, err := got.AsInt()
	if err != nil {
		t.Fatal(err)
	}
	if n != 258 {
		t.Fatalf("round trip = %d, want 258", n)
	}
}

func Test_ContextWriteToExplicitPort(t *testing.T) {
	ctx := New("test")
	var buf strings.Builder
	if err := ctx.Write(value.Int(42), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "42" {
		t.Fatalf("Write = %q, want %q", buf.String(), "42")
	}
}
