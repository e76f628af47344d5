package planner

import "github.com/nnrt/nnrt/graphir"

// generateDeallocationPlan compresses the freelist into per-step
// [free_from, free_to] slices into a flat to_be_freed vector. It walks the
// final freelist in reverse -- chronological,
// oldest-freed-first order, since the freelist itself is push-front (most
// recently freed first).
func (s *state) generateDeallocationPlan() {
	entries := s.free.entries
	s.plan.ToBeFreed = make([]graphir.ValueIndex, 0, len(entries))

	prevDeallocPoint := -1
	current := 0
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		s.plan.ToBeFreed = append(s.plan.ToBeFreed, entry.value)
		if entry.deallocatePoint != prevDeallocPoint {
			if prevDeallocPoint >= 0 {
				s.plan.ExecutionPlan[prevDeallocPoint].FreeToIndex = current - 1
			}
			prevDeallocPoint = entry.deallocatePoint
			s.plan.ExecutionPlan[prevDeallocPoint].FreeFromIndex = current
		}
		current++
	}
	if prevDeallocPoint >= 0 {
		s.plan.ExecutionPlan[prevDeallocPoint].FreeToIndex = current - 1
	}
}
