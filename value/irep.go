package value

// IRep is the internal representation of a compiled procedure: bytecode
// plus its constant pool and nested IReps (spec.md §3/§4.F). It is a heap
// object variant (TagIRep) like any other; package irep implements the
// §4.F binary (de)serializer for it.
type IRep struct {
	Header

	Argc       uint8 // argument arity
	Flags      uint8 // flag bits, including FlagVariadic
	FrameSize  uint8 // frame size needed when this IRep executes
	ObjectPool []Value
	Code       []byte
	Nested     []*IRep // child IReps
}

// FlagVariadic marks an IRep whose last formal collects extra arguments.
const FlagVariadic uint8 = 1 << 0

// knownFlags masks serialization/deserialization to the flag bits this
// spec defines, per spec.md §4.F "flags (masked to known bits)".
const knownFlags = FlagVariadic

// IsVariadic reports whether the variadic flag is set.
func (ir *IRep) IsVariadic() bool { return ir.Flags&FlagVariadic != 0 }
