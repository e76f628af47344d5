package planner

import (
	"fmt"
	"io"

	"github.com/nnrt/nnrt/graphir"
)

// Fprint renders plan as deterministic text keyed by value index. It is used
// by tests -- including a check that rendering the same plan twice yields
// byte-identical text -- and by callers debugging a plan by eye.
// The format is not a stable external interface: don't parse it.
func Fprint(w io.Writer, graph *graphir.Graph, plan *ExecutionPlan) error {
	if _, err := fmt.Fprintln(w, "Allocation Plan:"); err != nil {
		return err
	}
	for idx := 0; idx < graph.NumValues(); idx++ {
		name := graph.ValueName(graphir.ValueIndex(idx))
		if _, err := fmt.Fprintf(w, "(%d) %s : ", idx, name); err != nil {
			return err
		}
		if idx >= len(plan.AllocationPlan) {
			if _, err := fmt.Fprintln(w, "Index out-of-range!"); err != nil {
				return err
			}
			continue
		}
		elt := plan.AllocationPlan[idx]
		if _, err := fmt.Fprint(w, elt.AllocKind); err != nil {
			return err
		}
		if elt.AllocKind == Reuse {
			if _, err := fmt.Fprintf(w, " %d", elt.ReusedBuffer); err != nil {
				return err
			}
		}
		if !elt.Location.IsUnset() {
			if _, err := fmt.Fprintf(w, ", %+v", elt.Location); err != nil {
				return err
			}
		}
		if elt.CreateFence {
			if _, err := fmt.Fprint(w, ", use fence"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nExecution Plan:"); err != nil {
		return err
	}
	for i, step := range plan.ExecutionPlan {
		node := graph.Node(step.NodeIndex)
		if _, err := fmt.Fprintf(w, "[%d] %s (%s)\n", i, node.OpType, node.Name); err != nil {
			return err
		}
		if !step.FreesNothing() {
			if _, err := fmt.Fprint(w, "Free ml-values: "); err != nil {
				return err
			}
			sep := ""
			for j := step.FreeFromIndex; j <= step.FreeToIndex; j++ {
				freedIdx := plan.ToBeFreed[j]
				name := graph.ValueName(freedIdx)
				if _, err := fmt.Fprintf(w, "%s(%d) %s", sep, freedIdx, name); err != nil {
					return err
				}
				sep = ", "
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}
