package planner

import (
	"github.com/dustin/go-humanize"
	"github.com/nnrt/nnrt/graphir"
	"github.com/nnrt/nnrt/shapes"
)

// FootprintEstimate is a best-effort, human-facing summary of a plan's
// static memory usage. It is diagnostic only: values whose shape carries a
// symbolic dimension contribute to UnsizedRoots rather than Bytes, since
// their true size is only known at execution time. ComputeReusePlan never
// consults this -- it exists purely for the CLI and for humans reading logs.
type FootprintEstimate struct {
	Bytes        uint64
	UnsizedRoots int
}

// EstimateFootprint sums the byte size of every distinct root buffer the
// plan allocates. PreExisting values are excluded: their memory belongs to
// the caller, not to this plan.
func EstimateFootprint(graph *graphir.Graph, plan *ExecutionPlan) FootprintEstimate {
	var est FootprintEstimate
	for idx, elt := range plan.AllocationPlan {
		switch elt.AllocKind {
		case Allocate, AllocateStatically, AllocateOutput:
		default:
			continue
		}
		if !elt.ValueType.IsTensor() {
			continue
		}
		shape, ok := graph.ShapeOf(graphir.ValueIndex(idx))
		count, known := elementCount(shape)
		if !ok || !known {
			est.UnsizedRoots++
			continue
		}
		est.Bytes += uint64(elt.ValueType.ElementSize()) * uint64(count)
	}
	return est
}

// elementCount returns the product of shape's axes and whether every axis
// was a known integer extent; a symbolic axis anywhere makes the count
// unknown.
func elementCount(shape shapes.Shape) (count int, known bool) {
	count = 1
	for _, axis := range shape.Axes {
		if !axis.Known {
			return 0, false
		}
		count *= axis.Value
	}
	return count, true
}

// String renders a FootprintEstimate the way byte counts are formatted
// elsewhere in this codebase's diagnostics, via humanize.Bytes/humanize.Comma.
func (f FootprintEstimate) String() string {
	if f.UnsizedRoots == 0 {
		return humanize.Bytes(f.Bytes)
	}
	return humanize.Bytes(f.Bytes) + " (+ " + humanize.Comma(int64(f.UnsizedRoots)) + " values of unknown size)"
}
