package planner

import (
	"github.com/nnrt/nnrt/allocator"
	"github.com/nnrt/nnrt/graphir"
	"github.com/nnrt/nnrt/valuetype"
	"k8s.io/klog/v2"
)

// initialize sizes the working tables to the known value-index space. Every
// AllocationPlan entry starts with Location set to the explicit
// allocator.Unset sentinel, never the Go zero Info{} -- Unset carries
// DeviceID: -1 precisely so it never compares equal to a real, zero-valued
// device allocator.
func (s *state) initialize(numValues, numScheduledNodes int) {
	s.infos = make([]valueInfo, numValues)
	allocationPlan := make([]AllocPlanPerValue, numValues)
	for i := range allocationPlan {
		allocationPlan[i].Location = allocator.Unset
	}
	s.plan = &ExecutionPlan{
		AllocationPlan: allocationPlan,
		ExecutionPlan:  make([]NodeExecutionPlan, 0, numScheduledNodes),
	}
}

// computeUseCounts walks inputs, initializers and every scheduled node to
// compute a static reference count per value and assign each value a
// tentative allocator location.
func (s *state) computeUseCounts(scheduled []graphir.NodeIndex) error {
	klog.V(2).Infof("planner: computing use counts over %d scheduled nodes", len(scheduled))

	for _, name := range s.input.GraphInputs() {
		idx, ok := s.input.ValueIndex(name)
		if !ok {
			return unknownValueErr(name)
		}
		s.processDef(idx, graphir.NewDefUnknownShape(name, valuetype.Type{}))
		s.incUseCount(idx) // models the caller holding a reference post-inference.
	}

	for _, name := range s.input.Initializers() {
		idx, ok := s.input.ValueIndex(name)
		if !ok {
			return unknownValueErr(name)
		}
		s.processDef(idx, graphir.NewDefUnknownShape(name, valuetype.Type{}))
		s.incUseCount(idx)
	}

	for _, nodeIndex := range scheduled {
		node := s.input.Node(nodeIndex)

		for _, in := range node.InputDefs {
			if !in.Exists {
				continue
			}
			idx, ok := s.input.ValueIndex(in.Name)
			if !ok {
				return unknownValueErr(in.Name)
			}
			s.incUseCount(idx)
		}

		def := s.input.KernelDef(nodeIndex)
		if def == nil {
			return missingKernelErr(node.OpType, node.Name)
		}

		defaultAllocatorInfo := s.input.DefaultAllocatorInfo(nodeIndex, allocator.MemTypeDefault)
		for i, out := range node.OutputDefs {
			if !out.Exists {
				continue
			}
			idx, ok := s.input.ValueIndex(out.Name)
			if !ok {
				return unknownValueErr(out.Name)
			}
			s.processDef(idx, out)

			if !defaultAllocatorInfo.IsCPU() {
				// Non-CPU outputs get a location now; a memory-type override
				// picks a different allocator off the same node, still eagerly.
				if memType, overridden := def.OutputMemTypeOf(i); overridden {
					s.allocPlan(idx).Location = s.input.DefaultAllocatorInfo(nodeIndex, memType)
				} else {
					s.allocPlan(idx).Location = defaultAllocatorInfo
				}
			}
			// CPU-default outputs are left at allocator.Unset, a deferred
			// location bound later, at execution time.
		}

		if def.ExecQueueID != 0 {
			node.ForEachDef(func(d graphir.Def, _ bool) {
				idx, ok := s.input.ValueIndex(d.Name)
				if !ok {
					return
				}
				s.allocPlan(idx).CreateFence = true
			})
		}
	}

	for _, name := range s.input.GraphOutputs() {
		idx, ok := s.input.ValueIndex(name)
		if !ok {
			return unknownValueErr(name)
		}
		s.incUseCount(idx)
	}

	return nil
}
