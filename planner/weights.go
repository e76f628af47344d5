package planner

import (
	"github.com/nnrt/nnrt/allocator"
	"github.com/nnrt/nnrt/graphir"
	"k8s.io/klog/v2"
)

// generateWeightPlan marks every initializer referenced by some node as
// statically allocated on the appropriate device. The first reference to a
// given initializer, in scheduled node order, wins; later references never
// overwrite -- a deliberate design choice, resolved here by additionally
// logging when a later reference disagrees rather than failing.
func (s *state) generateWeightPlan(scheduled []graphir.NodeIndex) error {
	initializers := make(map[string]bool, len(s.input.Initializers()))
	for _, name := range s.input.Initializers() {
		initializers[name] = true
	}
	if len(initializers) == 0 {
		return nil
	}

	for _, nodeIndex := range scheduled {
		node := s.input.Node(nodeIndex)
		def := s.input.KernelDef(nodeIndex)
		if def == nil {
			return missingKernelErr(node.OpType, node.Name)
		}

		for i, in := range node.InputDefs {
			if !in.Exists || !initializers[in.Name] {
				continue
			}
			idx, ok := s.input.ValueIndex(in.Name)
			if !ok {
				return unknownValueErr(in.Name)
			}

			var location allocator.Info
			if def.OnCPUExplicitly(i) {
				location = s.input.ProviderAllocator(allocator.CPU, allocator.MemTypeDefault)
			} else {
				provider := s.input.NodeProvider(nodeIndex)
				location = s.input.ProviderAllocator(provider, allocator.MemTypeDefault)
			}

			if s.weightBound[idx] {
				existing := s.allocPlan(idx).Location
				if existing != location {
					klog.Warningf("planner: initializer %q already bound to allocator %+v by an earlier node; "+
						"node %q (op %q) disagrees with %+v, first reference wins", in.Name, existing, node.Name, node.OpType, location)
				}
				continue
			}

			s.allocPlan(idx).AllocKind = AllocateStatically
			s.allocPlan(idx).ValueType = in.Type
			s.allocPlan(idx).Location = location
			s.weightBound[idx] = true
		}
	}
	return nil
}
