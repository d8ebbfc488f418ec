package irep

import "errors"

var (
	// ErrUnsupportedType marks a value variant outside §4.F's grammar
	// (anything but int/string/symbol/IRep/char — procedures excepted, see
	// ErrNativeProcedure/ErrCapturedEnv).
	ErrUnsupportedType = errors.New("irep: unsupported value type")

	// ErrNativeProcedure marks an attempt to serialize a host-native
	// procedure, which has no IRep to encode.
	ErrNativeProcedure = errors.New("irep: cannot serialize a native procedure")

	// ErrCapturedEnv marks an attempt to serialize a closure whose
	// captured environment is non-empty; only non-closed procedures
	// reduce to a bare IRep on the wire.
	ErrCapturedEnv = errors.New("irep: cannot serialize a procedure with a captured environment")

	// ErrTooManyChildren marks an IRep whose constant-object or
	// nested-IRep count does not fit the one-byte count fields.
	ErrTooManyChildren = errors.New("irep: constant or nested-irep count exceeds 255")

	// ErrTruncated marks a decode that ran out of input mid-object.
	ErrTruncated = errors.New("irep: truncated input")

	// ErrTrailingBytes marks a decode that left unconsumed bytes after
	// the top-level object, violating the round-trip contract.
	ErrTrailingBytes = errors.New("irep: trailing bytes after decoded value")

	// ErrUnknownTag marks a leading tag byte outside the §4.F grammar.
	ErrUnknownTag = errors.New("irep: unknown tag byte")
)
