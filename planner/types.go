// Package planner implements the static allocation planner: given a
// topologically-ordered graph and its bound kernels, it produces an
// allocation decision for every value and a deallocation schedule indexed
// by execution step. It is a pure function -- CreatePlan mutates only its
// own working tables and returns an immutable ExecutionPlan, or a fatal
// error and no plan.
package planner

import (
	"github.com/nnrt/nnrt/allocator"
	"github.com/nnrt/nnrt/graphir"
	"github.com/nnrt/nnrt/valuetype"
)

// AllocKind tags how a value's buffer is obtained.
type AllocKind int

const (
	// PreExisting values are supplied by the caller (a graph input); the
	// planner must never reuse their buffer.
	PreExisting AllocKind = iota
	// AllocateStatically values are initializers, alive for the whole session.
	AllocateStatically
	// Allocate values get a fresh buffer on first use during execution.
	Allocate
	// Reuse values share another value's buffer; see AllocPlanPerValue.ReusedBuffer.
	Reuse
	// AllocateOutput values are graph outputs: allocated fresh, never reused.
	AllocateOutput
)

func (k AllocKind) String() string {
	switch k {
	case PreExisting:
		return "PreExisting"
	case AllocateStatically:
		return "AllocateStatically"
	case Allocate:
		return "Allocate"
	case Reuse:
		return "Reuse"
	case AllocateOutput:
		return "AllocateOutput"
	default:
		return "UnknownAllocKind"
	}
}

// AllocPlanPerValue is the planner's decision for a single value index.
type AllocPlanPerValue struct {
	AllocKind AllocKind
	ValueType valuetype.Type

	// Location is the allocator this value's buffer comes from. It may be
	// allocator.Unset for CPU-default values whose binding is deliberately
	// deferred to the executor (a "deferred CPU location").
	Location allocator.Info

	// ReusedBuffer is the root donor's value index; meaningful only when
	// AllocKind == Reuse.
	ReusedBuffer graphir.ValueIndex

	// CreateFence is true iff any incident node requires cross-queue
	// synchronization for this value.
	CreateFence bool
}

// NodeExecutionPlan is the per-step entry in the execution plan: which node
// runs, and which slice of ExecutionPlan.ToBeFreed to release once it's done.
type NodeExecutionPlan struct {
	NodeIndex graphir.NodeIndex

	// FreeFromIndex, FreeToIndex are inclusive bounds into ToBeFreed. The
	// default set by newNodeExecutionPlan, (0, -1), has FreeFromIndex >
	// FreeToIndex, meaning "free nothing at this step" -- deliberately not the
	// Go zero value (0,0), which would denote freeing ToBeFreed[0].
	FreeFromIndex int
	FreeToIndex   int
}

// FreesNothing reports whether this step's free range is empty.
func (s NodeExecutionPlan) FreesNothing() bool { return s.FreeFromIndex > s.FreeToIndex }

// ExecutionPlan is the planner's immutable output.
type ExecutionPlan struct {
	// AllocationPlan is indexed by graphir.ValueIndex.
	AllocationPlan []AllocPlanPerValue

	// ExecutionPlan is in execution order, sentinels excluded.
	ExecutionPlan []NodeExecutionPlan

	// ToBeFreed is a flat vector of value indices grouped by freeing step,
	// sliced by each step's FreeFromIndex/FreeToIndex.
	ToBeFreed []graphir.ValueIndex
}

func newNodeExecutionPlan(nodeIndex graphir.NodeIndex) NodeExecutionPlan {
	return NodeExecutionPlan{NodeIndex: nodeIndex, FreeFromIndex: 0, FreeToIndex: -1}
}
