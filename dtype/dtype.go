// Package dtype defines the element types the planner reasons about when
// comparing two tensors for size-compatibility (see shapes.Same).
//
// It deliberately only knows what element_size requires: a dense element
// type and its size in bytes. It does not know how to encode, decode or
// compute with values of these types -- that belongs to the kernels the
// planner never looks inside of.
package dtype

import (
	"unsafe"

	"github.com/x448/float16"
)

// DType enumerates the element types a Value can carry.
type DType int

const (
	// Invalid is the zero value, used for non-tensor values and uninitialized state.
	Invalid DType = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	BFloat16
	Float32
	Float64
)

var names = map[DType]string{
	Invalid:  "Invalid",
	Bool:     "Bool",
	Int8:     "Int8",
	Int16:    "Int16",
	Int32:    "Int32",
	Int64:    "Int64",
	Uint8:    "Uint8",
	Uint16:   "Uint16",
	Uint32:   "Uint32",
	Uint64:   "Uint64",
	Float16:  "Float16",
	BFloat16: "BFloat16",
	Float32:  "Float32",
	Float64:  "Float64",
}

func (d DType) String() string {
	if name, ok := names[d]; ok {
		return name
	}
	return "UnknownDType"
}

var float16Size = unsafe.Sizeof(float16.Float16(0))

var sizes = map[DType]uintptr{
	Invalid:  0,
	Bool:     1,
	Int8:     1,
	Int16:    2,
	Int32:    4,
	Int64:    8,
	Uint8:    1,
	Uint16:   2,
	Uint32:   4,
	Uint64:   8,
	Float16:  float16Size, // github.com/x448/float16.Float16 is the wire representation; stays accurate if its storage ever changes.
	BFloat16: 2,
	Float32:  4,
	Float64:  8,
}

// ElementSize returns the size in bytes of a single element of d.
//
// This is the Go-side counterpart of the source system's GetElementSize:
// it resolves a type descriptor to the concrete storage size of one
// element, the only fact the reuse pass needs about a dtype.
func ElementSize(d DType) uintptr {
	if size, ok := sizes[d]; ok {
		return size
	}
	return 0
}
