// Package session assembles the planner.Input the planner consumes out of a
// graphir.Graph, a kernel.Registry, and an allocator.Registry -- the
// "session state" of this repository, in the same spirit as the source
// system's SessionState: a read-only bundle of already-resolved
// capabilities, never a place where planning decisions are made.
package session

import (
	"github.com/google/uuid"
	"github.com/nnrt/nnrt/allocator"
	"github.com/nnrt/nnrt/graphir"
	"github.com/nnrt/nnrt/kernel"
	"k8s.io/klog/v2"
)

// State bundles a graph with its bound kernels and allocator registry into
// the read-only capabilities planner.CreatePlan needs.
type State struct {
	// RunID correlates this session's log lines; it plays no role in
	// planning and is never read by the planner, so it cannot affect
	// determinism.
	RunID string

	graph      *graphir.Graph
	kernels    *kernel.Registry
	allocators *allocator.Registry
	providers  map[graphir.NodeIndex]allocator.ProviderKind
}

// New builds a State for graph, tagging it with a fresh correlation ID for
// log lines emitted while planning it.
func New(graph *graphir.Graph, kernels *kernel.Registry, allocators *allocator.Registry, providers map[graphir.NodeIndex]allocator.ProviderKind) *State {
	runID := uuid.NewString()
	klog.V(3).Infof("session %s: bound graph with %d values", runID, graph.NumValues())
	return &State{
		RunID:      runID,
		graph:      graph,
		kernels:    kernels,
		allocators: allocators,
		providers:  providers,
	}
}

func (s *State) TopologicalOrder() ([]graphir.NodeIndex, error) {
	return s.graph.TopologicalOrder(), nil
}

func (s *State) Node(i graphir.NodeIndex) *graphir.Node { return s.graph.Node(i) }

func (s *State) ValueIndex(name string) (graphir.ValueIndex, bool) { return s.graph.ValueIndex(name) }

func (s *State) NumValues() int { return s.graph.NumValues() }

func (s *State) GraphInputs() []string  { return s.graph.GraphInputs() }
func (s *State) GraphOutputs() []string { return s.graph.GraphOutputs() }
func (s *State) Initializers() []string { return s.graph.Initializers() }

func (s *State) KernelDef(i graphir.NodeIndex) *kernel.Def { return s.kernels.Lookup(int(i)) }

func (s *State) NodeProvider(i graphir.NodeIndex) allocator.ProviderKind {
	return s.providers[i]
}

func (s *State) DefaultAllocatorInfo(i graphir.NodeIndex, memType allocator.MemType) allocator.Info {
	provider, ok := s.allocators.Provider(s.NodeProvider(i))
	if !ok {
		return allocator.Unset
	}
	return provider.AllocatorInfo(memType)
}

func (s *State) ProviderAllocator(kind allocator.ProviderKind, memType allocator.MemType) allocator.Info {
	provider, ok := s.allocators.Provider(kind)
	if !ok {
		return allocator.Unset
	}
	return provider.AllocatorInfo(memType)
}

// Graph exposes the underlying graph, mainly so callers can pass it to
// planner.Fprint / planner.EstimateFootprint alongside the resulting plan.
func (s *State) Graph() *graphir.Graph { return s.graph }
