package printer

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dcurrie/picrin/value"
)

// printerState is the per-call scratch state threaded through one
// Write/WriteShared/WriteSimple/Display invocation. Grounded on
// original_source/lib/ext/write.c's struct writer_control, split here
// into the Session-owned seen/labels maps and nextLabel counter (reached
// through pointers, so they outlive the call) and the per-call escape mode.
type printerState struct {
	w         io.Writer
	escape    EscapeMode
	seen      *value.AttrMap // nil for SharingNone
	labels    *value.AttrMap // nil for SharingNone
	nextLabel *int           // nil for SharingNone
}

// sharingActive distinguishes write-simple's plain recursive print (no
// seen/labels state at all, cycles recurse forever by design) from the
// label-aware print shared by write/write-shared.
func (p *printerState) sharingActive() bool { return p.seen != nil }

// emit prints v with no sharing analysis at all (write-simple): a cyclic
// v recurses until the Go call stack is exhausted, by design.
func (p *printerState) emit(v value.Value) error {
	return p.writeValue(v)
}

// emitShared prints v using the seen/labels state a prior traverseAll
// pass already populated.
func (p *printerState) emitShared(v value.Value) error {
	return p.writeValue(v)
}

func (p *printerState) writeValue(v value.Value) error {
	shared := p.sharingActive() && isShared(p.seen, v)
	if shared {
		if lbl, ok := p.labels.Get(v); ok {
			_, err := fmt.Fprintf(p.w, "#%d#", lbl.(int))
			return err
		}
		i := *p.nextLabel
		*p.nextLabel++
		if _, err := fmt.Fprintf(p.w, "#%d=", i); err != nil {
			return err
		}
		p.labels.Set(v, i)
	}
	return p.body(v)
}

func (p *printerState) body(v value.Value) error {
	switch v.Tag() {
	case value.TagNil:
		return p.str("()")
	case value.TagTrue:
		return p.str("#t")
	case value.TagFalse:
		return p.str("#f")
	case value.TagUndefined:
		return p.str("#undefined")
	case value.TagEOF:
		return p.str("#.(eof-object)")
	case value.TagInvalid:
		return p.str("#<invalid>")
	case value.TagInt:
		n, _ := v.AsInt()
		return p.str(strconv.FormatInt(n, 10))
	case value.TagFloat:
		f, _ := v.AsFloat()
		return p.str(formatFloat(f))
	case value.TagChar:
		r, _ := v.AsChar()
		return p.writeChar(r)
	case value.TagSymbol:
		name, _ := v.SymName()
		return p.str(name)
	case value.TagString:
		s, _ := v.StrBytes()
		return p.writeString(s)
	case value.TagBlob:
		b, _ := v.BlobBytes()
		return p.writeBlob(b)
	case value.TagPair:
		return p.writePair(v)
	case value.TagVector:
		return p.writeVector(v)
	case value.TagDict:
		return p.writeDict(v)
	case value.TagRecord:
		return p.writeRecord(v)
	default:
		return p.writeFallback(v)
	}
}

func (p *printerState) str(s string) error {
	_, err := io.WriteString(p.w, s)
	return err
}

// formatFloat renders f the way spec.md's design notes require: always a
// C-style decimal point, with the three non-finite values spelled out as
// original_source/lib/ext/write.c's write_float does.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan.0"
	case math.IsInf(f, 1):
		return "+inf.0"
	case math.IsInf(f, -1):
		return "-inf.0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

var namedChars = map[rune]string{
	'\a': "alarm",
	'\b': "backspace",
	0x7f: "delete",
	0x1b: "escape",
	'\n': "newline",
	'\r': "return",
	' ':  "space",
	'\t': "tab",
}

func (p *printerState) writeChar(r rune) error {
	if p.escape == EscapeDisplay {
		return p.str(string(r))
	}
	if name, ok := namedChars[r]; ok {
		return p.str("#\\" + name)
	}
	return p.str("#\\" + string(r))
}

func (p *printerState) writeString(s string) error {
	if p.escape == EscapeDisplay {
		// Input bytes are not re-read, so normalizing for a stable
		// on-screen form is safe here in a way it would not be for
		// write's escaped, round-trippable output.
		return p.str(norm.NFC.String(s))
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return p.str(b.String())
}

func (p *printerState) writeBlob(bytes []byte) error {
	var b strings.Builder
	b.WriteString("#u8(")
	for i, c := range bytes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(c)))
	}
	b.WriteByte(')')
	return p.str(b.String())
}

var sugarPrefixes = map[string]string{
	"quote":                   "'",
	"unquote":                 ",",
	"unquote-splicing":        ",@",
	"quasiquote":              "`",
	"syntax-quote":            "#'",
	"syntax-unquote":          "#,",
	"syntax-unquote-splicing": "#,@",
	"syntax-quasiquote":       "#`",
}

// pairSugar recognizes the `(quote x)`-shaped two-element lists that
// print with reader-macro sugar (original_source's write_pair).
func pairSugar(v value.Value) (prefix string, inner value.Value, ok bool) {
	car, _ := v.Car()
	cdr, _ := v.Cdr()
	if !car.IsSymbol() || !cdr.IsPair() {
		return "", value.Invalid(), false
	}
	cddr, _ := cdr.Cdr()
	if !cddr.IsNil() {
		return "", value.Invalid(), false
	}
	name, _ := car.SymName()
	pfx, ok := sugarPrefixes[name]
	if !ok {
		return "", value.Invalid(), false
	}
	cadr, _ := cdr.Car()
	return pfx, cadr, true
}

func (p *printerState) writePair(v value.Value) error {
	if prefix, inner, ok := pairSugar(v); ok {
		if err := p.str(prefix); err != nil {
			return err
		}
		return p.writeValue(inner)
	}
	if err := p.str("("); err != nil {
		return err
	}
	if err := p.writePairHelp(v); err != nil {
		return err
	}
	return p.str(")")
}

// writePairHelp prints a list's elements space-separated, flattening the
// cdr chain only while each cdr pair is not itself a shared/labeled
// object (original_source's write_pair_help + is_shared_object check):
// a shared tail must be printed via its own label/back-reference rather
// than silently inlined.
func (p *printerState) writePairHelp(pair value.Value) error {
	car, _ := pair.Car()
	cdr, _ := pair.Cdr()
	if err := p.writeValue(car); err != nil {
		return err
	}
	if cdr.IsNil() {
		return nil
	}
	cdrShared := p.sharingActive() && isShared(p.seen, cdr)
	if cdr.IsPair() && !cdrShared {
		if err := p.str(" "); err != nil {
			return err
		}
		return p.writePairHelp(cdr)
	}
	if err := p.str(" . "); err != nil {
		return err
	}
	return p.writeValue(cdr)
}

func (p *printerState) writeVector(v value.Value) error {
	n, _ := v.VecLen()
	if err := p.str("#("); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := p.str(" "); err != nil {
				return err
			}
		}
		elt, _ := v.VecRef(i)
		if err := p.writeValue(elt); err != nil {
			return err
		}
	}
	return p.str(")")
}

func (p *printerState) writeDict(v value.Value) error {
	if err := p.str("#.(dictionary"); err != nil {
		return err
	}
	err := v.DictEach(func(key, val value.Value) error {
		name, kerr := key.SymName()
		if kerr != nil {
			return kerr
		}
		if err := p.str(" '" + name + " "); err != nil {
			return err
		}
		return p.writeValue(val)
	})
	if err != nil {
		return err
	}
	return p.str(")")
}

func (p *printerState) writeRecord(v value.Value) error {
	r, err := v.RecordObj()
	if err != nil {
		return err
	}
	if err := p.str("#<" + r.TypeName + " "); err != nil {
		return err
	}
	if err := p.writeValue(r.Datum); err != nil {
		return err
	}
	return p.str(">")
}

// writeFallback renders the object variants spec.md §4.C leaves with no
// dedicated syntax (procedures, ports, errors, ireps, frames, attribute
// tables, opaque data) as `#<typename 0xADDR>`, exactly
// original_source's typename()+pic_ptr() default case.
func (p *printerState) writeFallback(v value.Value) error {
	obj := v.Object()
	if obj == nil {
		return p.str(fmt.Sprintf("#<%s>", v.Tag()))
	}
	addr := reflect.ValueOf(obj).Pointer()
	return p.str(fmt.Sprintf("#<%s %#x>", v.Tag(), addr))
}
