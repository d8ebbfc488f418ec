package irep

import (
	"encoding/binary"

	"github.com/dcurrie/picrin/value"
)

// reader is a forward-only cursor over a decode buffer.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrTruncated
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readN(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if r.pos+n > len(r.buf) {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readUint32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) readInt32() (int32, error) {
	n, err := r.readUint32()
	return int32(n), err
}

// readLenString reads the uint32-length/bytes/NUL payload shared by the
// string and symbol tags.
func readLenString(r *reader) (string, error) {
	l, err := r.readUint32()
	if err != nil {
		return "", err
	}
	b, err := r.readN(int(l))
	if err != nil {
		return "", err
	}
	if _, err := r.readByte(); err != nil { // trailing NUL
		return "", err
	}
	return string(b), nil
}

// Decode deserializes a single value from buf (spec.md §4.F), interning
// any symbol encountered through interner so identity matches every other
// path into the intern table (spec.md invariant #1). Decode requires buf
// to be consumed exactly — trailing bytes are a format error, since every
// grammar entry is self-delimiting.
func Decode(h *value.Heap, interner *value.InternTable, buf []byte) (value.Value, error) {
	r := &reader{buf: buf}
	v, err := decodeValue(h, interner, r)
	if err != nil {
		return value.Invalid(), err
	}
	if r.pos != len(r.buf) {
		return value.Invalid(), ErrTrailingBytes
	}
	return v, nil
}

func decodeValue(h *value.Heap, interner *value.InternTable, r *reader) (value.Value, error) {
	tag, err := r.readByte()
	if err != nil {
		return value.Invalid(), err
	}
	switch tag {
	case tagInt:
		n, err := r.readInt32()
		if err != nil {
			return value.Invalid(), err
		}
		return value.Int(int64(n)), nil

	case tagString:
		s, err := readLenString(r)
		if err != nil {
			return value.Invalid(), err
		}
		return h.AllocString(s), nil

	case tagSymbol:
		name, err := readLenString(r)
		if err != nil {
			return value.Invalid(), err
		}
		return interner.Intern(name), nil

	case tagChar:
		b, err := r.readByte()
		if err != nil {
			return value.Invalid(), err
		}
		return value.Char(rune(b)), nil

	case tagIRep:
		return decodeIRep(h, interner, r)

	default:
		return value.Invalid(), ErrUnknownTag
	}
}

// decodeIRep decodes one IRep layout (spec.md §4.F) into a freshly
// allocated IRep heap object. The object is allocated before its children
// are decoded and preserved across their decoding (Heap.Preserve/Restore)
// so that deeply nested constant pools and child IReps — which themselves
// allocate — cannot collect the parent while it is still being built
// (spec.md §4.F "GC-protected across child decodes").
func decodeIRep(h *value.Heap, interner *value.InternTable, r *reader) (value.Value, error) {
	argc, err := r.readByte()
	if err != nil {
		return value.Invalid(), err
	}
	flags, err := r.readByte()
	if err != nil {
		return value.Invalid(), err
	}
	frameSize, err := r.readByte()
	if err != nil {
		return value.Invalid(), err
	}
	nestedCount, err := r.readByte()
	if err != nil {
		return value.Invalid(), err
	}
	objectCount, err := r.readByte()
	if err != nil {
		return value.Invalid(), err
	}
	codeLen, err := r.readUint32()
	if err != nil {
		return value.Invalid(), err
	}

	irepVal := h.AllocIRep()
	ir, err := irepVal.IRepObj()
	if err != nil {
		return value.Invalid(), err
	}
	ir.Argc = argc
	ir.Flags = flags & value.FlagVariadic
	ir.FrameSize = frameSize

	mark := h.Preserve()
	defer h.Restore(mark)

	objs := make([]value.Value, objectCount)
	for i := range objs {
		v, err := decodeValue(h, interner, r)
		if err != nil {
			return value.Invalid(), err
		}
		objs[i] = v
	}
	ir.ObjectPool = objs

	code, err := r.readN(int(codeLen))
	if err != nil {
		return value.Invalid(), err
	}
	ir.Code = append([]byte(nil), code...)

	nested := make([]*value.IRep, nestedCount)
	for i := range nested {
		childVal, err := decodeIRep(h, interner, r)
		if err != nil {
			return value.Invalid(), err
		}
		child, err := childVal.IRepObj()
		if err != nil {
			return value.Invalid(), err
		}
		nested[i] = child
	}
	ir.Nested = nested

	return irepVal, nil
}
