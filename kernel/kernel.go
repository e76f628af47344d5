// Package kernel describes the static metadata a kernel implementation
// carries about one graph node: which outputs alias which inputs, which
// in-place reuses are merely permitted, per-argument memory residency, and
// whether the node needs a cross-queue fence. Kernel binding itself --
// choosing which kernel implements which node -- is out of scope; this
// package only models what a bound kernel tells the planner about itself.
package kernel

import "github.com/nnrt/nnrt/allocator"

// ArgPair names an (input index, output index) relationship.
type ArgPair struct {
	InputIndex  int
	OutputIndex int
}

// Def is the static metadata for one node's bound kernel.
type Def struct {
	// AliasPairs are mandatory aliases: the kernel requires that output to
	// share the named input's buffer (e.g. Reshape). FindReusableInput must
	// honor these before considering MayInplacePairs.
	AliasPairs []ArgPair

	// MayInplacePairs are permitted, not required, in-place reuses: the
	// output may reuse the input's buffer if the input's last use is this
	// node and the shapes/element-sizes agree.
	MayInplacePairs []ArgPair

	// InputMemType overrides the memory type of specific input arguments;
	// absence of an index means MemTypeDefault.
	InputMemType map[int]allocator.MemType

	// OutputMemType overrides the memory type of specific output arguments.
	OutputMemType map[int]allocator.MemType

	// ExecQueueID is the device queue this kernel executes on. A non-zero
	// value not equal to the "no special queue" default (0) means every
	// value incident to the node needs a fence created for cross-queue sync.
	ExecQueueID int
}

// InputMemTypeOf returns the effective MemType for input argument i.
func (d Def) InputMemTypeOf(i int) allocator.MemType {
	if mt, ok := d.InputMemType[i]; ok {
		return mt
	}
	return allocator.MemTypeDefault
}

// OutputMemTypeOf returns the effective MemType override for output argument
// i, and whether one was declared at all (as opposed to defaulting).
func (d Def) OutputMemTypeOf(i int) (allocator.MemType, bool) {
	mt, ok := d.OutputMemType[i]
	return mt, ok
}

// OnCPUExplicitly reports whether input argument i is pinned to CPU memory
// by the kernel regardless of the node's execution provider.
func (d Def) OnCPUExplicitly(i int) bool {
	return d.InputMemTypeOf(i) == allocator.MemTypeCPUInput
}

// Registry maps a node index to its bound kernel's Def. A missing entry is a
// fatal planning error (MissingKernel), never silently tolerated.
type Registry struct {
	defs map[int]*Def
}

// NewRegistry builds an empty kernel Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[int]*Def)}
}

// Bind associates nodeIndex with a kernel Def.
func (r *Registry) Bind(nodeIndex int, def *Def) {
	r.defs[nodeIndex] = def
}

// Lookup returns the Def bound to nodeIndex, or nil if none is bound.
func (r *Registry) Lookup(nodeIndex int) *Def {
	return r.defs[nodeIndex]
}
