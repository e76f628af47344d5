package planner_test

import (
	"testing"

	"github.com/nnrt/nnrt/allocator"
	"github.com/nnrt/nnrt/graphir"
	"github.com/nnrt/nnrt/kernel"
	"github.com/nnrt/nnrt/planner"
	"github.com/nnrt/nnrt/session"
	"github.com/stretchr/testify/require"
)

// checkInvariants asserts the core plan invariants against any plan produced
// for graph: every value has exactly one AllocKind (trivially
// true of the Go type, so this instead checks the *consistency* of that
// kind), Reuse never chains and always agrees on location, PreExisting /
// AllocateStatically / AllocateOutput values never appear in ToBeFreed, and
// ToBeFreed carries no duplicate.
func checkInvariants(t *testing.T, s *session.State, plan *planner.ExecutionPlan) {
	t.Helper()
	g := s.Graph()

	require.Len(t, plan.AllocationPlan, g.NumValues())

	seenFreed := make(map[graphir.ValueIndex]bool)
	for _, v := range plan.ToBeFreed {
		require.Falsef(t, seenFreed[v], "value %d appears twice in ToBeFreed", v)
		seenFreed[v] = true
		kind := plan.AllocationPlan[v].AllocKind
		require.NotContainsf(t, []planner.AllocKind{planner.PreExisting, planner.AllocateStatically, planner.AllocateOutput}, kind,
			"value %d (%s) with AllocKind %s must never be freed", v, g.ValueName(v), kind)
	}

	for idx, elt := range plan.AllocationPlan {
		if elt.AllocKind != planner.Reuse {
			continue
		}
		donor := plan.AllocationPlan[elt.ReusedBuffer]
		require.NotEqual(t, graphir.ValueIndex(idx), elt.ReusedBuffer, "value %d reuses itself", idx)
		require.NotEqual(t, planner.Reuse, donor.AllocKind, "value %d's donor %d is itself a Reuse (chain depth > 1)", idx, elt.ReusedBuffer)
		require.Equal(t, donor.Location, elt.Location, "value %d and its donor %d disagree on location", idx, elt.ReusedBuffer)
	}

	for _, name := range g.GraphInputs() {
		idx, ok := g.ValueIndex(name)
		require.True(t, ok)
		require.Equal(t, planner.PreExisting, plan.AllocationPlan[idx].AllocKind)
	}
	for _, name := range g.Initializers() {
		idx, ok := g.ValueIndex(name)
		require.True(t, ok)
		require.Equal(t, planner.AllocateStatically, plan.AllocationPlan[idx].AllocKind)
	}
	for _, name := range g.GraphOutputs() {
		idx, ok := g.ValueIndex(name)
		require.True(t, ok)
		require.Equal(t, planner.AllocateOutput, plan.AllocationPlan[idx].AllocKind)
	}

	require.Equal(t, len(plan.ExecutionPlan), countScheduled(g))
}

func countScheduled(g *graphir.Graph) int {
	n := 0
	for _, idx := range g.TopologicalOrder() {
		if !g.Node(idx).Sentinel {
			n++
		}
	}
	return n
}

func buildRichGraph() *fixture {
	f := newFixture()
	shape := f32(4, 4)
	inplace := &kernel.Def{MayInplacePairs: []kernel.ArgPair{{InputIndex: 0, OutputIndex: 0}}}
	alias := &kernel.Def{AliasPairs: []kernel.ArgPair{{InputIndex: 0, OutputIndex: 0}}}

	f.b.SetGraphInputs("X")
	f.b.SetInitializers("W")

	f.addNode("MatMul", "matmul", []graphir.Def{tensorDef("X", shape), tensorDef("W", shape)}, []graphir.Def{tensorDef("M1", shape)}, allocator.CPU, &kernel.Def{})
	f.addNode("Relu", "relu", []graphir.Def{tensorDef("M1", shape)}, []graphir.Def{tensorDef("M2", shape)}, allocator.CPU, inplace)
	f.addNode("Reshape", "reshape", []graphir.Def{tensorDef("M2", shape)}, []graphir.Def{tensorDef("M3", f32(16))}, allocator.CPU, alias)
	f.addNode("Sigmoid", "sigmoid", []graphir.Def{tensorDef("X", shape)}, []graphir.Def{tensorDef("B1", shape)}, allocator.CPU, &kernel.Def{})
	f.addNode("Add", "add", []graphir.Def{tensorDef("M3", f32(16)), tensorDef("M3", f32(16))}, []graphir.Def{tensorDef("Sum", f32(16))}, allocator.CPU, &kernel.Def{})
	f.addNode("Identity", "id_b1", []graphir.Def{tensorDef("B1", shape)}, []graphir.Def{tensorDef("Y1", shape)}, allocator.CPU, &kernel.Def{})
	f.addNode("Identity", "id_sum", []graphir.Def{tensorDef("Sum", f32(16))}, []graphir.Def{tensorDef("Y2", f32(16))}, allocator.CPU, &kernel.Def{})
	f.b.SetGraphOutputs("Y1", "Y2")
	return f
}

func TestInvariants_RichGraph(t *testing.T) {
	f := buildRichGraph()
	plan, s := f.plan(t)
	checkInvariants(t, s, plan)
}

func TestDeterminism_SamePlanTwice(t *testing.T) {
	g := buildRichGraph().b.Build()
	kernels := kernel.NewRegistry()
	providers := make(map[graphir.NodeIndex]allocator.ProviderKind)
	for _, idx := range g.TopologicalOrder() {
		node := g.Node(idx)
		if node.Sentinel {
			continue
		}
		providers[idx] = allocator.CPU
		switch node.OpType {
		case "Relu":
			kernels.Bind(int(idx), &kernel.Def{MayInplacePairs: []kernel.ArgPair{{InputIndex: 0, OutputIndex: 0}}})
		case "Reshape":
			kernels.Bind(int(idx), &kernel.Def{AliasPairs: []kernel.ArgPair{{InputIndex: 0, OutputIndex: 0}}})
		default:
			kernels.Bind(int(idx), &kernel.Def{})
		}
	}

	allocators := newAllocators()
	s1 := session.New(g, kernels, allocators, providers)
	plan1, err := planner.CreatePlan(s1)
	require.NoError(t, err)

	s2 := session.New(g, kernels, allocators, providers)
	plan2, err := planner.CreatePlan(s2)
	require.NoError(t, err)

	require.Equal(t, plan1.AllocationPlan, plan2.AllocationPlan)
	require.Equal(t, plan1.ExecutionPlan, plan2.ExecutionPlan)
	require.Equal(t, plan1.ToBeFreed, plan2.ToBeFreed)
}

// Weight idempotence (property 10): a weight referenced by two nodes on
// different providers keeps the first-encountered location on repeated
// planning of the same graph, and never fails -- only warns via klog.
func TestWeightFirstReferenceWinsAcrossRuns(t *testing.T) {
	f := newFixture()
	shape := f32(4)
	f.b.SetInitializers("W")
	f.b.SetGraphInputs("X")

	f.addNode("Gather", "gather_cpu", []graphir.Def{tensorDef("W", shape), tensorDef("X", f32(1))}, []graphir.Def{tensorDef("Y1", shape)}, allocator.CPU, &kernel.Def{})
	f.addNode("Gather", "gather_gpu", []graphir.Def{tensorDef("W", shape), tensorDef("X", f32(1))}, []graphir.Def{tensorDef("Y2", shape)}, gpu, &kernel.Def{})
	f.b.SetGraphOutputs("Y1", "Y2")

	g := f.b.Build()
	allocators := newAllocators()

	s1 := session.New(g, f.kernels, allocators, f.providers)
	plan1, err := planner.CreatePlan(s1)
	require.NoError(t, err)
	wIdx, _ := g.ValueIndex("W")
	require.Equal(t, planner.AllocateStatically, plan1.AllocationPlan[wIdx].AllocKind)
	require.Equal(t, "CPU", plan1.AllocationPlan[wIdx].Location.Name)

	s2 := session.New(g, f.kernels, allocators, f.providers)
	plan2, err := planner.CreatePlan(s2)
	require.NoError(t, err)
	require.Equal(t, plan1.AllocationPlan[wIdx], plan2.AllocationPlan[wIdx])
}

func TestSafety_NoUseAfterFree(t *testing.T) {
	f := buildRichGraph()
	plan, s := f.plan(t)
	g := s.Graph()

	freedAtStep := make(map[graphir.ValueIndex]int)
	for stepIdx, step := range plan.ExecutionPlan {
		if step.FreesNothing() {
			continue
		}
		for j := step.FreeFromIndex; j <= step.FreeToIndex; j++ {
			freedAtStep[plan.ToBeFreed[j]] = stepIdx
		}
	}

	root := func(idx graphir.ValueIndex) graphir.ValueIndex {
		for plan.AllocationPlan[idx].AllocKind == planner.Reuse {
			idx = plan.AllocationPlan[idx].ReusedBuffer
		}
		return idx
	}

	for stepIdx, step := range plan.ExecutionPlan {
		node := g.Node(step.NodeIndex)
		node.ForEachDef(func(def graphir.Def, _ bool) {
			idx, ok := g.ValueIndex(def.Name)
			if !ok {
				return
			}
			r := root(idx)
			if freedStep, freed := freedAtStep[r]; freed {
				require.LessOrEqualf(t, stepIdx, freedStep,
					"value %s (root %d) consumed at step %d after being freed at step %d", def.Name, r, stepIdx, freedStep)
			}
		})
	}
}
