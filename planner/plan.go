package planner

import (
	"github.com/nnrt/nnrt/graphir"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// CreatePlan runs the five planning phases in order -- Initialize,
// ComputeUseCounts, GenerateWeightPlan, ComputeReusePlan,
// GenerateDeallocationPlan -- over input, producing an immutable
// ExecutionPlan or the first fatal error encountered.
//
// CreatePlan is a pure function: it mutates only its own working state,
// never input, and that working state is discarded on return, success or
// failure alike.
func CreatePlan(input Input) (*ExecutionPlan, error) {
	if input == nil {
		return nil, &Error{Kind: GraphUnavailable}
	}

	order, err := input.TopologicalOrder()
	if err != nil {
		return nil, &Error{Kind: TopologicalOrderUnavailable, Cause: errors.Wrap(err, "topological order provider failed")}
	}

	scheduled := make([]graphir.NodeIndex, 0, len(order))
	for _, n := range order {
		if !input.Node(n).Sentinel {
			scheduled = append(scheduled, n)
		}
	}

	s := newState(input, input.NumValues())
	s.initialize(input.NumValues(), len(scheduled))
	for _, n := range scheduled {
		s.plan.ExecutionPlan = append(s.plan.ExecutionPlan, newNodeExecutionPlan(n))
	}

	klog.V(2).Infof("planner: initialized for %d values, %d scheduled nodes", input.NumValues(), len(scheduled))

	if err := s.computeUseCounts(scheduled); err != nil {
		return nil, err
	}
	if err := s.computeReusePlan(scheduled); err != nil {
		return nil, err
	}
	s.generateDeallocationPlan()

	klog.V(2).Infof("planner: plan complete, %d values freed across %d steps", len(s.plan.ToBeFreed), len(s.plan.ExecutionPlan))
	return s.plan, nil
}
