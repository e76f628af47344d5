// Package valuetype carries the "opaque type descriptor" the planner threads
// through an AllocPlanPerValue without ever looking inside: just enough to
// know whether a value is a tensor (and if so, its dtype and, separately, its
// shape) or something else the planner refuses to try sharing, like a
// sequence or map.
package valuetype

import "github.com/nnrt/nnrt/dtype"

// Kind distinguishes tensor values, which the reuse pass may share buffers
// for, from everything else.
type Kind int

const (
	// KindTensor is a dense tensor value.
	KindTensor Kind = iota
	// KindSequence is a sequence (e.g. a list of tensors) -- never shared.
	KindSequence
	// KindMap is a map-typed value -- never shared.
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindTensor:
		return "Tensor"
	case KindSequence:
		return "Sequence"
	case KindMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// Type is the descriptor attached to a value. Shape is intentionally not part
// of Type: the planner's shape provider is a separate, per-def lookup (see
// graphir.Def), matching the source system's separation of a NodeArg's
// static Type() from the shape-inference result attached to it.
type Type struct {
	Kind  Kind
	DType dtype.DType // meaningful iff Kind == KindTensor.
}

// Tensor constructs a tensor Type with the given element type.
func Tensor(dt dtype.DType) Type { return Type{Kind: KindTensor, DType: dt} }

// Sequence constructs a non-tensor sequence Type.
func Sequence() Type { return Type{Kind: KindSequence} }

// Map constructs a non-tensor map Type.
func Map() Type { return Type{Kind: KindMap} }

// IsTensor reports whether t denotes a tensor value.
func (t Type) IsTensor() bool { return t.Kind == KindTensor }

// ElementSize returns the size in bytes of one element of t, or 0 if t is not a tensor.
func (t Type) ElementSize() uintptr {
	if !t.IsTensor() {
		return 0
	}
	return dtype.ElementSize(t.DType)
}

func (t Type) String() string {
	if t.Kind == KindTensor {
		return t.DType.String()
	}
	return t.Kind.String()
}
