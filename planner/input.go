package planner

import (
	"github.com/nnrt/nnrt/allocator"
	"github.com/nnrt/nnrt/graphir"
	"github.com/nnrt/nnrt/kernel"
)

// Input is every capability CreatePlan consumes from the surrounding system.
// It is intentionally narrow: graph loading, type/shape
// inference, kernel binding, and allocator backends are all satisfied
// elsewhere (see package session for one concrete assembly) and handed to
// the planner as this already-resolved bundle.
type Input interface {
	// TopologicalOrder returns every node index in a valid topological
	// order, sentinels included -- the planner filters those out itself.
	// An error here is fatal and reported as TopologicalOrderUnavailable.
	TopologicalOrder() ([]graphir.NodeIndex, error)

	// Node returns the node at the given index.
	Node(i graphir.NodeIndex) *graphir.Node

	// ValueIndex resolves a value name to its dense index. ok is false if
	// the name was never registered.
	ValueIndex(name string) (idx graphir.ValueIndex, ok bool)

	// NumValues is the size of the dense value-index space.
	NumValues() int

	// GraphInputs, GraphOutputs, Initializers return the graph's declared
	// value-name sets.
	GraphInputs() []string
	GraphOutputs() []string
	Initializers() []string

	// KernelDef returns the kernel metadata bound to node i, or nil if no
	// kernel is bound (a fatal MissingKernel condition).
	KernelDef(i graphir.NodeIndex) *kernel.Def

	// DefaultAllocatorInfo returns the allocator a node would use for a
	// given memory type under its own execution provider.
	DefaultAllocatorInfo(i graphir.NodeIndex, memType allocator.MemType) allocator.Info

	// ProviderAllocator returns the allocator a named execution provider
	// uses for a given memory type, independent of any specific node --
	// used to relocate weights pinned to CPU via OnCpuExplicitly.
	ProviderAllocator(kind allocator.ProviderKind, memType allocator.MemType) allocator.Info

	// NodeProvider returns the execution provider a node is bound to.
	NodeProvider(i graphir.NodeIndex) allocator.ProviderKind
}
