// Package graphir is the minimal graph intermediate representation the
// planner is handed. It does not load models, infer types or shapes, bind
// kernels, or compute a topological order -- all of that remains out of
// scope. What it provides is a plain, already-ordered,
// already-typed graph a caller (a loader, or a test) assembles directly,
// mirroring how a real session hands the planner a fully-resolved
// SessionState rather than raw model bytes.
package graphir

import (
	"github.com/nnrt/nnrt/allocator"
	"github.com/nnrt/nnrt/shapes"
	"github.com/nnrt/nnrt/valuetype"
)

// ValueIndex identifies a logical value: a dense, zero-based index into the
// graph's flat value table.
type ValueIndex int

// NodeIndex identifies a graph node, including sentinels.
type NodeIndex int

// Def describes one input or output argument of a node: a reference to a
// value by name, whether the argument is actually present (an optional
// argument the node didn't wire up reports Exists==false), its type, and,
// if known, its shape.
type Def struct {
	Name   string
	Exists bool
	Type   valuetype.Type
	shape  *shapes.Shape // nil means unknown; see Shape.
}

// NewDef builds an existing Def with a known shape.
func NewDef(name string, typ valuetype.Type, shape shapes.Shape) Def {
	return Def{Name: name, Exists: true, Type: typ, shape: &shape}
}

// NewDefUnknownShape builds an existing Def whose shape is not statically known.
func NewDefUnknownShape(name string, typ valuetype.Type) Def {
	return Def{Name: name, Exists: true, Type: typ}
}

// AbsentDef returns a placeholder for an optional argument the node did not
// provide. The planner skips absent defs silently.
func AbsentDef() Def { return Def{Exists: false} }

// Shape returns the def's shape and whether it is known. An absent def never
// has a known shape.
func (d Def) Shape() (shapes.Shape, bool) {
	if d.shape == nil {
		return shapes.Shape{}, false
	}
	return *d.shape, true
}

// Node is one scheduled operator in the graph.
type Node struct {
	Index      NodeIndex
	OpType     string
	Name       string
	InputDefs  []Def
	OutputDefs []Def
	Provider   ProviderKind
	Sentinel   bool // source/sink placeholder, excluded from the execution plan.
}

// ProviderKind identifies the execution provider a node was bound to. It is
// an alias of allocator.ProviderKind, so callers pass allocator.ProviderKind
// values here directly since the two concepts are the same string-keyed kind.
type ProviderKind = allocator.ProviderKind

// ForEachDef invokes f once per existing input def, then once per existing
// output def, in declaration order. Absent defs are skipped, matching the
// source system's ForEachDef contract used for fence propagation.
func (n *Node) ForEachDef(f func(def Def, isInput bool)) {
	for _, d := range n.InputDefs {
		if d.Exists {
			f(d, true)
		}
	}
	for _, d := range n.OutputDefs {
		if d.Exists {
			f(d, false)
		}
	}
}

// Graph is the fully-resolved, already topologically-ordered program the
// planner consumes. Construct one with Builder.
type Graph struct {
	nodes        []Node // includes sentinels, in topological order.
	valueIndex   map[string]ValueIndex
	valueNames   []string // indexed by ValueIndex, for diagnostics.
	valueShapes  []*shapes.Shape // indexed by ValueIndex; nil means unknown.
	graphInputs  []string
	graphOutputs []string
	initializers []string
}

// ShapeOf returns the shape recorded for a value index, from the first def
// site that declared one, and whether a shape is known at all. This is
// diagnostic-only bookkeeping (used by footprint estimation); the planner
// itself only ever consults the shape carried on the specific Def it is
// holding at the time.
func (g *Graph) ShapeOf(idx ValueIndex) (shapes.Shape, bool) {
	if int(idx) < 0 || int(idx) >= len(g.valueShapes) || g.valueShapes[idx] == nil {
		return shapes.Shape{}, false
	}
	return *g.valueShapes[idx], true
}

// TopologicalOrder returns every node index in topological order, sentinels included.
func (g *Graph) TopologicalOrder() []NodeIndex {
	order := make([]NodeIndex, len(g.nodes))
	for i := range g.nodes {
		order[i] = NodeIndex(i)
	}
	return order
}

// Node returns the node at index i.
func (g *Graph) Node(i NodeIndex) *Node {
	return &g.nodes[i]
}

// ValueIndex looks up the dense index assigned to a value name. The second
// return is false if name was never registered.
func (g *Graph) ValueIndex(name string) (ValueIndex, bool) {
	idx, ok := g.valueIndex[name]
	return idx, ok
}

// ValueName returns the name registered for a value index, for diagnostics.
func (g *Graph) ValueName(idx ValueIndex) string {
	if int(idx) < 0 || int(idx) >= len(g.valueNames) {
		return "<out-of-range>"
	}
	return g.valueNames[idx]
}

// NumValues is the size N of the dense value-index space.
func (g *Graph) NumValues() int { return len(g.valueNames) }

// GraphInputs returns the graph's input value names.
func (g *Graph) GraphInputs() []string { return g.graphInputs }

// GraphOutputs returns the graph's output value names.
func (g *Graph) GraphOutputs() []string { return g.graphOutputs }

// Initializers returns the graph's initializer (weight) value names.
func (g *Graph) Initializers() []string { return g.initializers }

// IsGraphOutput reports whether name is one of the graph's declared outputs.
func (g *Graph) IsGraphOutput(name string) bool {
	for _, o := range g.graphOutputs {
		if o == name {
			return true
		}
	}
	return false
}

// IsInitializer reports whether name is one of the graph's initializers.
func (g *Graph) IsInitializer(name string) bool {
	for _, w := range g.initializers {
		if w == name {
			return true
		}
	}
	return false
}
