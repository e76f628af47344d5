package planner

import (
	"github.com/nnrt/nnrt/graphir"
	"github.com/nnrt/nnrt/kernel"
	"github.com/nnrt/nnrt/shapes"
	"github.com/nnrt/nnrt/valuetype"
)

// computeReusePlan simulates execution left-to-right, deciding for every
// output whether to allocate fresh, reuse an input in place, reuse a freed
// buffer, or allocate as a graph output; it maintains the freelist of values
// whose refcount has dropped to zero.
func (s *state) computeReusePlan(scheduled []graphir.NodeIndex) error {
	for _, name := range s.input.GraphInputs() {
		idx, ok := s.input.ValueIndex(name)
		if !ok {
			return unknownValueErr(name)
		}
		s.allocPlan(idx).AllocKind = PreExisting
		s.allocPlan(idx).ValueType = s.infos[idx].defSite.Type
	}

	if err := s.generateWeightPlan(scheduled); err != nil {
		return err
	}

	graphOutputs := make(map[string]bool, len(s.input.GraphOutputs()))
	for _, name := range s.input.GraphOutputs() {
		graphOutputs[name] = true
	}

	for pc, nodeIndex := range scheduled {
		node := s.input.Node(nodeIndex)
		def := s.input.KernelDef(nodeIndex)
		if def == nil {
			return missingKernelErr(node.OpType, node.Name)
		}

		// outputArgNum counts existing outputs only, skipping absent ones
		// before incrementing -- an absent output ahead of a tensor output
		// must not shift the tensor's index, since it's that index a
		// kernel's alias/may-inplace pairs reference by OutputIndex.
		outputArgNum := 0
		for _, out := range node.OutputDefs {
			if !out.Exists {
				continue
			}
			current, ok := s.input.ValueIndex(out.Name)
			if !ok {
				return unknownValueErr(out.Name)
			}
			s.allocPlan(current).ValueType = out.Type

			switch {
			case graphOutputs[out.Name]:
				s.allocPlan(current).AllocKind = AllocateOutput
			case isNonTensor(out):
				s.allocPlan(current).AllocKind = Allocate
			default:
				if reused, ok := s.findReusableInput(node, def, outputArgNum); ok {
					s.reuse(reused, current)
				} else if reused, ok := s.findReusableTensor(out); ok {
					s.reuse(reused, current)
				} else {
					s.allocPlan(current).AllocKind = Allocate
				}
			}
			outputArgNum++
		}

		for _, in := range node.InputDefs {
			if !in.Exists {
				continue
			}
			idx, ok := s.input.ValueIndex(in.Name)
			if !ok {
				return unknownValueErr(in.Name)
			}
			original := s.root(idx)
			if s.decUseCount(original) == 0 {
				s.free.PushFront(original, pc)
			}
		}

		for _, out := range node.OutputDefs {
			if !out.Exists {
				continue
			}
			idx, ok := s.input.ValueIndex(out.Name)
			if !ok {
				return unknownValueErr(out.Name)
			}
			original := s.root(idx)
			if s.useCount(original) == 0 {
				s.free.PushFront(original, pc)
			}
		}
	}
	return nil
}

// reuse folds recipient's buffer into donor's root: recipient's use-count
// is transferred onto the root, and the
// recipient's AllocPlan is set to Reuse with the root as donor. The
// recipient's own use-count field is never read again after this point.
func (s *state) reuse(donor, recipient graphir.ValueIndex) {
	root := s.root(donor)
	s.infos[recipient].root = root
	s.infos[root].useCount += s.infos[recipient].useCount

	plan := s.allocPlan(recipient)
	plan.AllocKind = Reuse
	plan.ReusedBuffer = root
	plan.Location = s.allocPlan(root).Location
}

// findReusableInput honors kernel-declared aliasing. A mandatory
// alias_pairs entry must be reused; failing that, a may_inplace_pairs entry
// is eligible iff its root donor's use-count is exactly 1 (this consumption
// is its last use) and the shapes/element-sizes agree.
func (s *state) findReusableInput(node *graphir.Node, def *kernel.Def, outputArgNum int) (graphir.ValueIndex, bool) {
	for _, pair := range def.AliasPairs {
		if pair.OutputIndex != outputArgNum {
			continue
		}
		if pair.InputIndex < 0 || pair.InputIndex >= len(node.InputDefs) {
			continue
		}
		in := node.InputDefs[pair.InputIndex]
		if !in.Exists {
			continue
		}
		idx, ok := s.input.ValueIndex(in.Name)
		if !ok {
			continue
		}
		return idx, true
	}

	for _, pair := range def.MayInplacePairs {
		if pair.OutputIndex != outputArgNum {
			continue
		}
		if pair.InputIndex < 0 || pair.InputIndex >= len(node.InputDefs) {
			continue
		}
		in := node.InputDefs[pair.InputIndex]
		if !in.Exists {
			continue
		}
		idx, ok := s.input.ValueIndex(in.Name)
		if !ok {
			continue
		}
		original := s.root(idx)
		if s.useCount(original) != 1 {
			continue
		}
		out := node.OutputDefs[pair.OutputIndex]
		if !sameSize(in, out) {
			continue
		}
		return idx, true
	}
	return 0, false
}

// findReusableTensor searches the freelist in LIFO order for a buffer
// matching outputDef's allocator and size. On a match, the entry is removed
// from the freelist (not merely marked consumed).
func (s *state) findReusableTensor(outputDef graphir.Def) (graphir.ValueIndex, bool) {
	requiredShape, ok := outputDef.Shape()
	if !ok {
		return 0, false
	}
	idx, ok := s.input.ValueIndex(outputDef.Name)
	if !ok {
		return 0, false
	}
	requiredLocation := s.allocPlan(idx).Location

	for i, entry := range s.free.entries {
		candidateDef := s.infos[entry.value].defSite
		availableLocation := s.allocPlan(entry.value).Location
		if availableLocation != requiredLocation {
			continue
		}
		availableShape, ok := candidateDef.Shape()
		if !ok {
			continue
		}
		if sameSizeShapes(availableShape, candidateDef.Type, requiredShape, outputDef.Type) {
			s.free.RemoveAt(i)
			return entry.value, true
		}
	}
	return 0, false
}

// sameSize compares two NodeArg-like defs for byte-for-byte buffer fit:
// element sizes must match and shapes must be exactly Same. Unknown shapes
// on either side make this conservatively false.
func sameSize(a, b graphir.Def) bool {
	if !a.Exists || !b.Exists {
		return false
	}
	shapeA, ok := a.Shape()
	if !ok {
		return false
	}
	shapeB, ok := b.Shape()
	if !ok {
		return false
	}
	return sameSizeShapes(shapeA, a.Type, shapeB, b.Type)
}

func sameSizeShapes(shapeA shapes.Shape, typeA valuetype.Type, shapeB shapes.Shape, typeB valuetype.Type) bool {
	return typeA.ElementSize() == typeB.ElementSize() && shapes.Same(shapeA, shapeB)
}

// isNonTensor reports whether def's type is not a tensor type; the reuse
// pass never attempts sharing for such values.
func isNonTensor(def graphir.Def) bool {
	return !def.Type.IsTensor()
}
