package value

import "math"

// Value is the tagged-struct representation: a tag plus a payload union
// emulated as (num uint64, obj heapObject). Immediates use num; heap
// variants use obj and leave num zero. See nanbox.go for the alternate
// NaN-boxed encoding behind the same accessor contract.
type Value struct {
	tag Tag
	num uint64
	obj heapObject
}

// Tag returns v's variant tag.
func (v Value) Tag() Tag { return v.tag }

// --- immediate constructors ---

// Nil returns the empty list.
func Nil() Value { return Value{tag: TagNil} }

// True returns the boolean true.
func True() Value { return Value{tag: TagTrue} }

// False returns the boolean false.
func False() Value { return Value{tag: TagFalse} }

// Bool returns True() or False() for b.
func Bool(b bool) Value {
	if b {
		return True()
	}
	return False()
}

// Int returns a small-integer Value.
func Int(n int64) Value { return Value{tag: TagInt, num: uint64(n)} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{tag: TagFloat, num: math.Float64bits(f)} }

// Char returns a character Value.
func Char(r rune) Value { return Value{tag: TagChar, num: uint64(uint32(r))} }

// EOF returns the end-of-file marker.
func EOF() Value { return Value{tag: TagEOF} }

// Undefined returns the undefined value (e.g. the result of (if #f #f)).
func Undefined() Value { return Value{tag: TagUndefined} }

// Invalid returns the sentinel used for "no value" where a Value is
// required syntactically but semantically absent.
func Invalid() Value { return Value{tag: TagInvalid} }

func fromObj(tag Tag, o heapObject) Value { return Value{tag: tag, obj: o} }

// --- predicates ---

func (v Value) IsNil() bool       { return v.tag == TagNil }
func (v Value) IsTrue() bool      { return v.tag == TagTrue }
func (v Value) IsFalse() bool     { return v.tag == TagFalse }
func (v Value) IsBool() bool      { return v.tag == TagTrue || v.tag == TagFalse }
func (v Value) IsInt() bool       { return v.tag == TagInt }
func (v Value) IsFloat() bool     { return v.tag == TagFloat }
func (v Value) IsChar() bool      { return v.tag == TagChar }
func (v Value) IsEOF() bool       { return v.tag == TagEOF }
func (v Value) IsUndefined() bool { return v.tag == TagUndefined }
func (v Value) IsInvalid() bool   { return v.tag == TagInvalid }
func (v Value) IsImmediate() bool { return v.tag.IsImmediate() }

func (v Value) IsSymbol() bool    { return v.tag == TagSymbol }
func (v Value) IsString() bool    { return v.tag == TagString }
func (v Value) IsBlob() bool      { return v.tag == TagBlob }
func (v Value) IsPair() bool      { return v.tag == TagPair }
func (v Value) IsVector() bool    { return v.tag == TagVector }
func (v Value) IsDict() bool      { return v.tag == TagDict }
func (v Value) IsAttrTable() bool { return v.tag == TagAttrTable }
func (v Value) IsProcedure() bool { return v.tag == TagProcedure }
func (v Value) IsPort() bool      { return v.tag == TagPort }
func (v Value) IsError() bool     { return v.tag == TagError }
func (v Value) IsRecord() bool    { return v.tag == TagRecord }
func (v Value) IsIRep() bool      { return v.tag == TagIRep }
func (v Value) IsFrame() bool     { return v.tag == TagContext }
func (v Value) IsData() bool      { return v.tag == TagData }

// Truthy reports Scheme truthiness: everything except #f is true.
func (v Value) Truthy() bool { return v.tag != TagFalse }

// --- immediate accessors ---

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, error) {
	if v.tag != TagInt {
		return 0, typeErr("AsInt", TagInt, v.tag)
	}
	return int64(v.num), nil
}

// AsFloat returns the float payload.
func (v Value) AsFloat() (float64, error) {
	if v.tag != TagFloat {
		return 0, typeErr("AsFloat", TagFloat, v.tag)
	}
	return math.Float64frombits(v.num), nil
}

// AsChar returns the character payload.
func (v Value) AsChar() (rune, error) {
	if v.tag != TagChar {
		return 0, typeErr("AsChar", TagChar, v.tag)
	}
	return rune(v.num), nil
}

// --- object access ---

// Object returns v's heap object, or nil for immediates.
func (v Value) Object() any { return v.obj }

func (v Value) asSymbol() (*Symbol, error) {
	if v.tag != TagSymbol {
		return nil, typeErr("Symbol", TagSymbol, v.tag)
	}
	return v.obj.(*Symbol), nil
}

// SymName returns the symbol's printed name.
func (v Value) SymName() (string, error) {
	s, err := v.asSymbol()
	if err != nil {
		return "", err
	}
	return s.Name, nil
}

// SymbolObj returns the underlying *Symbol, for identity comparisons.
func (v Value) SymbolObj() (*Symbol, error) { return v.asSymbol() }

// SymIsUninterned reports whether the symbol is a gensym (hygienic
// identifier per spec.md §4.D).
func (v Value) SymIsUninterned() (bool, error) {
	s, err := v.asSymbol()
	if err != nil {
		return false, err
	}
	return s.Uninterned, nil
}

func (v Value) asStr() (*Str, error) {
	if v.tag != TagString {
		return nil, typeErr("String", TagString, v.tag)
	}
	return v.obj.(*Str), nil
}

// StrBytes returns the string's content.
func (v Value) StrBytes() (string, error) {
	s, err := v.asStr()
	if err != nil {
		return "", err
	}
	return s.Bytes, nil
}

func (v Value) asBlob() (*Blob, error) {
	if v.tag != TagBlob {
		return nil, typeErr("Blob", TagBlob, v.tag)
	}
	return v.obj.(*Blob), nil
}

// BlobBytes returns the byte vector's content.
func (v Value) BlobBytes() ([]byte, error) {
	b, err := v.asBlob()
	if err != nil {
		return nil, err
	}
	return b.Bytes, nil
}

func (v Value) asPair() (*Pair, error) {
	if v.tag != TagPair {
		return nil, typeErr("Pair", TagPair, v.tag)
	}
	return v.obj.(*Pair), nil
}

// Car returns the pair's car.
func (v Value) Car() (Value, error) {
	p, err := v.asPair()
	if err != nil {
		return Invalid(), err
	}
	return p.Car, nil
}

// Cdr returns the pair's cdr.
func (v Value) Cdr() (Value, error) {
	p, err := v.asPair()
	if err != nil {
		return Invalid(), err
	}
	return p.Cdr, nil
}

// SetCar mutates the pair's car.
func (v Value) SetCar(x Value) error {
	p, err := v.asPair()
	if err != nil {
		return err
	}
	p.Car = x
	return nil
}

// SetCdr mutates the pair's cdr.
func (v Value) SetCdr(x Value) error {
	p, err := v.asPair()
	if err != nil {
		return err
	}
	p.Cdr = x
	return nil
}

// PairObj returns the underlying *Pair, for identity comparisons and the
// printer's cycle detection.
func (v Value) PairObj() (*Pair, error) { return v.asPair() }

func (v Value) asVector() (*Vector, error) {
	if v.tag != TagVector {
		return nil, typeErr("Vector", TagVector, v.tag)
	}
	return v.obj.(*Vector), nil
}

// VecLen returns the vector's length.
func (v Value) VecLen() (int, error) {
	vec, err := v.asVector()
	if err != nil {
		return 0, err
	}
	return len(vec.Slots), nil
}

// VecRef returns the i'th slot.
func (v Value) VecRef(i int) (Value, error) {
	vec, err := v.asVector()
	if err != nil {
		return Invalid(), err
	}
	if i < 0 || i >= len(vec.Slots) {
		return Invalid(), ErrIndexRange
	}
	return vec.Slots[i], nil
}

// VecSet mutates the i'th slot.
func (v Value) VecSet(i int, x Value) error {
	vec, err := v.asVector()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(vec.Slots) {
		return ErrIndexRange
	}
	vec.Slots[i] = x
	return nil
}

// VectorObj returns the underlying *Vector, for identity comparisons.
func (v Value) VectorObj() (*Vector, error) { return v.asVector() }

func (v Value) asDict() (*Dict, error) {
	if v.tag != TagDict {
		return nil, typeErr("Dict", TagDict, v.tag)
	}
	return v.obj.(*Dict), nil
}

// DictObj returns the underlying *Dict.
func (v Value) DictObj() (*Dict, error) { return v.asDict() }

func (v Value) asAttrTable() (*AttrTable, error) {
	if v.tag != TagAttrTable {
		return nil, typeErr("AttrTable", TagAttrTable, v.tag)
	}
	return v.obj.(*AttrTable), nil
}

// AttrTableObj returns the underlying *AttrTable.
func (v Value) AttrTableObj() (*AttrTable, error) { return v.asAttrTable() }

func (v Value) asProcedure() (*Procedure, error) {
	if v.tag != TagProcedure {
		return nil, typeErr("Procedure", TagProcedure, v.tag)
	}
	return v.obj.(*Procedure), nil
}

// ProcedureObj returns the underlying *Procedure.
func (v Value) ProcedureObj() (*Procedure, error) { return v.asProcedure() }

func (v Value) asRecord() (*Record, error) {
	if v.tag != TagRecord {
		return nil, typeErr("Record", TagRecord, v.tag)
	}
	return v.obj.(*Record), nil
}

// RecordObj returns the underlying *Record.
func (v Value) RecordObj() (*Record, error) { return v.asRecord() }

func (v Value) asIRep() (*IRep, error) {
	if v.tag != TagIRep {
		return nil, typeErr("IRep", TagIRep, v.tag)
	}
	return v.obj.(*IRep), nil
}

// IRepObj returns the underlying *IRep.
func (v Value) IRepObj() (*IRep, error) { return v.asIRep() }

func (v Value) asFrame() (*Frame, error) {
	if v.tag != TagContext {
		return nil, typeErr("Frame", TagContext, v.tag)
	}
	return v.obj.(*Frame), nil
}

// FrameObj returns the underlying *Frame.
func (v Value) FrameObj() (*Frame, error) { return v.asFrame() }

func (v Value) asErrorObj() (*ErrorObj, error) {
	if v.tag != TagError {
		return nil, typeErr("ErrorObj", TagError, v.tag)
	}
	return v.obj.(*ErrorObj), nil
}

// ErrorObjVal returns the underlying *ErrorObj.
func (v Value) ErrorObjVal() (*ErrorObj, error) { return v.asErrorObj() }

// Identical reports pointer-identity equality for object variants and
// payload equality for immediates (spec.md §3: "Attribute-table keys are
// object references; lookup is by pointer identity, not structural
// equality", and §4.D's identifier=? builds on the same notion for
// symbols specifically).
func Identical(a, b Value) bool {
	if a.tag != b.tag {
		return false
	}
	if a.tag.IsImmediate() {
		return a.num == b.num
	}
	return a.obj == b.obj
}

// identityKey returns a comparable key uniquely identifying v's heap
// object, for use as an AttrMap bucket key. Returns nil for an immediate;
// AttrMap (attrmap.go) treats a nil key as "no entry" and stores nothing.
func identityKey(v Value) heapObject { return v.obj }
