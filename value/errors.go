package value

import "errors"

var (
	// ErrType indicates a typed accessor was applied to the wrong variant.
	ErrType = errors.New("value: type error")

	// ErrIndexRange indicates an index accessor saw i<0 or i>=length.
	ErrIndexRange = errors.New("value: index out of range")

	// ErrInvalidRange indicates a range accessor saw an invalid [lo,hi) pair.
	ErrInvalidRange = errors.New("value: invalid range")

	// ErrAllocation indicates the heap could not satisfy an allocation request.
	ErrAllocation = errors.New("value: allocation failed")
)

// TypeError reports that accessor expected wantTag but got v's actual tag.
type TypeError struct {
	Accessor string
	Want     Tag
	Got      Tag
}

func (e *TypeError) Error() string {
	return "value: " + e.Accessor + ": expected " + e.Want.String() + ", got " + e.Got.String()
}

func (e *TypeError) Unwrap() error { return ErrType }

func typeErr(accessor string, want, got Tag) error {
	return &TypeError{Accessor: accessor, Want: want, Got: got}
}
