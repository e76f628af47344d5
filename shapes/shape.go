// Package shapes defines the shape of a tensor value as the planner needs
// it: a rank, a sequence of axes that are either a known integer extent or
// a named symbolic dimension, and nothing else. Unlike a full shape-inference
// system, this package never computes a shape -- it only compares ones it is
// given, which is all ComputeReusePlan requires (see shapes.Same).
package shapes

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
)

// Dim is one axis of a Shape: either a known extent (Known=true) or a
// symbolic dimension identified by Param (e.g. "batch").
type Dim struct {
	Known bool
	Value int   // meaningful iff Known.
	Param string // meaningful iff !Known; empty means "truly unknown", never equal to anything.
}

// KnownDim constructs a Dim with a statically known extent.
func KnownDim(value int) Dim {
	if value <= 0 {
		exceptions.Panicf("shapes.KnownDim(%d): dimension must be positive", value)
	}
	return Dim{Known: true, Value: value}
}

// ParamDim constructs a symbolic Dim identified by a dimension parameter name.
func ParamDim(param string) Dim {
	if param == "" {
		exceptions.Panicf("shapes.ParamDim: param name must not be empty")
	}
	return Dim{Known: false, Param: param}
}

func (d Dim) String() string {
	if d.Known {
		return fmt.Sprintf("%d", d.Value)
	}
	if d.Param == "" {
		return "?"
	}
	return d.Param
}

// Shape is a rank plus a per-axis Dim. A Shape with zero axes is a scalar.
type Shape struct {
	Axes []Dim
}

// Make builds a Shape out of known integer dimensions. Use ParamDim/KnownDim
// directly via MakeDims for shapes that mix symbolic and known axes.
func Make(dims ...int) Shape {
	axes := make([]Dim, len(dims))
	for i, d := range dims {
		axes[i] = KnownDim(d)
	}
	return Shape{Axes: axes}
}

// MakeDims builds a Shape from explicit Dim values, allowing symbolic axes.
func MakeDims(dims ...Dim) Shape {
	return Shape{Axes: dims}
}

// Scalar returns the rank-0 shape.
func Scalar() Shape { return Shape{} }

// Rank is the number of axes.
func (s Shape) Rank() int { return len(s.Axes) }

func (s Shape) String() string {
	parts := make([]string, len(s.Axes))
	for i, a := range s.Axes {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Same reports whether two shapes are equal: ranks must match, and for each
// axis either both sides have the same known
// integer extent, or both carry the same non-empty symbolic parameter.
// Unknown-vs-known, differing symbols, and truly-unknown dims always compare
// unequal -- this is intentionally conservative, never a false positive.
func Same(a, b Shape) bool {
	if a.Rank() != b.Rank() {
		return false
	}
	for i := range a.Axes {
		da, db := a.Axes[i], b.Axes[i]
		switch {
		case da.Known && db.Known:
			if da.Value != db.Value {
				return false
			}
		case !da.Known && !db.Known:
			if da.Param == "" || db.Param == "" || da.Param != db.Param {
				return false
			}
		default:
			return false
		}
	}
	return true
}
