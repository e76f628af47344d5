package planner

import "github.com/nnrt/nnrt/graphir"

// valueInfo is auxiliary, plan-generation-only bookkeeping for one value.
// It is discarded once CreatePlan returns.
type valueInfo struct {
	defSite  graphir.Def
	useCount int
	// root is a union-find-style pointer: it
	// starts out pointing at the value itself and is re-pointed to the
	// root donor buffer once the value is folded into a Reuse.
	root graphir.ValueIndex
}

// freeEntry is one freelist record: a value whose static refcount reached
// zero, and the program counter at which it did.
type freeEntry struct {
	value           graphir.ValueIndex
	deallocatePoint int
}

// freelist is a LIFO of freed values: most-recently-freed first.
// It is implemented as a slice with index 0 as the front (most recent), so
// PushFront is a prepend and FindReusableTensor's LIFO scan is a forward
// scan -- exactly mirroring the source system's std::list push_front plus
// begin()-to-end() search.
type freelist struct {
	entries []freeEntry
}

func (f *freelist) PushFront(value graphir.ValueIndex, deallocatePoint int) {
	f.entries = append(f.entries, freeEntry{})
	copy(f.entries[1:], f.entries)
	f.entries[0] = freeEntry{value: value, deallocatePoint: deallocatePoint}
}

// RemoveAt deletes the entry at position i, preserving relative order of the
// rest.
func (f *freelist) RemoveAt(i int) {
	f.entries = append(f.entries[:i], f.entries[i+1:]...)
}

// state is the planner's mutable working set for one CreatePlan call.
type state struct {
	input Input
	plan  *ExecutionPlan
	infos []valueInfo
	free  freelist

	// weightBound tracks which initializers already have a location bound
	// by GenerateWeightPlan, to implement "first reference wins" and to
	// detect (and only log, never fail on) a later disagreement.
	weightBound map[graphir.ValueIndex]bool
}

func newState(input Input, numValues int) *state {
	return &state{
		input:       input,
		infos:       make([]valueInfo, numValues),
		weightBound: make(map[graphir.ValueIndex]bool),
	}
}

func (s *state) useCount(v graphir.ValueIndex) int      { return s.infos[v].useCount }
func (s *state) setUseCount(v graphir.ValueIndex, n int) { s.infos[v].useCount = n }
func (s *state) incUseCount(v graphir.ValueIndex)        { s.infos[v].useCount++ }
func (s *state) decUseCount(v graphir.ValueIndex) int {
	s.infos[v].useCount--
	return s.infos[v].useCount
}

func (s *state) root(v graphir.ValueIndex) graphir.ValueIndex { return s.infos[v].root }

func (s *state) allocPlan(v graphir.ValueIndex) *AllocPlanPerValue {
	return &s.plan.AllocationPlan[v]
}

// processDef initializes the valueInfo for a value at its definition site:
// usecount reset to zero, root pointed at
// itself, def-site recorded.
func (s *state) processDef(v graphir.ValueIndex, def graphir.Def) {
	s.infos[v] = valueInfo{defSite: def, useCount: 0, root: v}
}
