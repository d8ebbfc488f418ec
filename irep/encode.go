package irep

import (
	"encoding/binary"
	"io"

	"github.com/dcurrie/picrin/value"
)

// Encode serializes v per spec.md §4.F, in two passes: the first writes
// into a byte-counting sink to measure the output size (spec.md "first
// pass with a null output buffer measures the size"), the second writes
// the real bytes into a buffer allocated to exactly that size.
func Encode(v value.Value) ([]byte, error) {
	var count countingWriter
	if err := writeValue(v, &count); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, count.n)
	w := &sliceWriter{buf: buf}
	if err := writeValue(v, w); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// countingWriter discards bytes, only tallying how many would be written —
// the "null output buffer" of spec.md's two-pass encoding pass.
type countingWriter struct{ n int }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += len(p)
	return len(p), nil
}

// sliceWriter appends to a pre-sized byte slice without further growth,
// since Encode's second pass writes exactly as many bytes as the first
// pass counted.
type sliceWriter struct{ buf []byte }

func (s *sliceWriter) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeUint32(w io.Writer, n uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], n)
	_, err := w.Write(buf[:])
	return err
}

func writeInt32(w io.Writer, n int32) error {
	return writeUint32(w, uint32(n))
}

// writeLenString writes a uint32 little-endian length L, L bytes, then one
// NUL byte (spec.md §4.F's string/symbol payload).
func writeLenString(w io.Writer, s string) error {
	if err := writeUint32(w, uint32(len(s))); err != nil {
		return err
	}
	if len(s) > 0 {
		if _, err := w.Write([]byte(s)); err != nil {
			return err
		}
	}
	return writeByte(w, 0)
}

// writeValue dispatches on v's variant per spec.md §4.F's object grammar.
// Procedures reduce to the IRep tag when they carry no native body and no
// captured environment; everything else outside the five-entry grammar is
// a serialization error.
func writeValue(v value.Value, w io.Writer) error {
	switch {
	case v.IsInt():
		n, err := v.AsInt()
		if err != nil {
			return err
		}
		if err := writeByte(w, tagInt); err != nil {
			return err
		}
		return writeInt32(w, int32(n))

	case v.IsString():
		s, err := v.StrBytes()
		if err != nil {
			return err
		}
		if err := writeByte(w, tagString); err != nil {
			return err
		}
		return writeLenString(w, s)

	case v.IsSymbol():
		name, err := v.SymName()
		if err != nil {
			return err
		}
		if err := writeByte(w, tagSymbol); err != nil {
			return err
		}
		return writeLenString(w, name)

	case v.IsChar():
		r, err := v.AsChar()
		if err != nil {
			return err
		}
		if err := writeByte(w, tagChar); err != nil {
			return err
		}
		return writeByte(w, byte(r))

	case v.IsIRep():
		ir, err := v.IRepObj()
		if err != nil {
			return err
		}
		if err := writeByte(w, tagIRep); err != nil {
			return err
		}
		return writeIRep(ir, w)

	case v.IsProcedure():
		proc, err := v.ProcedureObj()
		if err != nil {
			return err
		}
		if proc.Native != nil {
			return ErrNativeProcedure
		}
		if proc.Env != nil {
			return ErrCapturedEnv
		}
		if err := writeByte(w, tagIRep); err != nil {
			return err
		}
		return writeIRep(proc.IRep, w)

	default:
		return ErrUnsupportedType
	}
}

// writeIRep writes the IRep layout of spec.md §4.F: argc, flags,
// frame_size, nested_irep_count, object_count, code_length, then the
// constant pool, then raw code, then child IReps.
func writeIRep(ir *value.IRep, w io.Writer) error {
	if len(ir.ObjectPool) > maxCount || len(ir.Nested) > maxCount {
		return ErrTooManyChildren
	}

	if err := writeByte(w, ir.Argc); err != nil {
		return err
	}
	if err := writeByte(w, ir.Flags&value.FlagVariadic); err != nil {
		return err
	}
	if err := writeByte(w, ir.FrameSize); err != nil {
		return err
	}
	if err := writeByte(w, byte(len(ir.Nested))); err != nil {
		return err
	}
	if err := writeByte(w, byte(len(ir.ObjectPool))); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(ir.Code))); err != nil {
		return err
	}

	for _, obj := range ir.ObjectPool {
		if err := writeValue(obj, w); err != nil {
			return err
		}
	}
	if len(ir.Code) > 0 {
		if _, err := w.Write(ir.Code); err != nil {
			return err
		}
	}
	for _, child := range ir.Nested {
		if err := writeIRep(child, w); err != nil {
			return err
		}
	}
	return nil
}
