package graphir

import (
	"github.com/gomlx/exceptions"
	"github.com/nnrt/nnrt/shapes"
)

// Builder assembles a Graph one node at a time, in the topological order the
// caller has already computed elsewhere. It assigns each value name a dense
// ValueIndex the first time it is seen, exactly like the source system's
// MLValueIdxMap being populated as nodes are added to a session.
type Builder struct {
	nodes        []Node
	valueIndex   map[string]ValueIndex
	valueNames   []string
	valueShapes  []*shapes.Shape
	graphInputs  []string
	graphOutputs []string
	initializers []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{valueIndex: make(map[string]ValueIndex)}
}

// indexOf returns the dense index for name, assigning a fresh one if name
// has not been seen before.
func (b *Builder) indexOf(name string) ValueIndex {
	if idx, ok := b.valueIndex[name]; ok {
		return idx
	}
	idx := ValueIndex(len(b.valueNames))
	b.valueIndex[name] = idx
	b.valueNames = append(b.valueNames, name)
	b.valueShapes = append(b.valueShapes, nil)
	return idx
}

// recordShape stores the first known shape seen for a def, leaving later,
// possibly-absent shapes for the same value untouched -- diagnostic-only
// bookkeeping, never consulted by the planner itself.
func (b *Builder) recordShape(def Def) {
	if !def.Exists {
		return
	}
	shape, ok := def.Shape()
	if !ok {
		return
	}
	idx := b.indexOf(def.Name)
	if b.valueShapes[idx] == nil {
		b.valueShapes[idx] = &shape
	}
}

// Touch registers name in the value-index space without attaching it to any
// node, for values the caller wants indexed even before the owning def is
// declared (e.g. declaring graph inputs before the nodes that consume them).
func (b *Builder) Touch(name string) ValueIndex {
	if name == "" {
		exceptions.Panicf("graphir.Builder.Touch: empty value name")
	}
	return b.indexOf(name)
}

// AddNode appends a node to the graph in the order given (the caller's
// topological order) and registers any new value names it introduces.
func (b *Builder) AddNode(opType, name string, inputs, outputs []Def, provider ProviderKind) NodeIndex {
	for _, d := range inputs {
		if d.Exists {
			b.indexOf(d.Name)
			b.recordShape(d)
		}
	}
	for _, d := range outputs {
		if d.Exists {
			b.indexOf(d.Name)
			b.recordShape(d)
		}
	}
	idx := NodeIndex(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		Index:      idx,
		OpType:     opType,
		Name:       name,
		InputDefs:  inputs,
		OutputDefs: outputs,
		Provider:   provider,
	})
	return idx
}

// AddSentinel appends a source/sink placeholder node, excluded from the
// execution plan but present in topological order.
func (b *Builder) AddSentinel(name string) NodeIndex {
	idx := NodeIndex(len(b.nodes))
	b.nodes = append(b.nodes, Node{Index: idx, Name: name, Sentinel: true})
	return idx
}

// SetGraphInputs declares the graph's input value names, registering each.
func (b *Builder) SetGraphInputs(names ...string) {
	for _, n := range names {
		b.indexOf(n)
	}
	b.graphInputs = append(b.graphInputs, names...)
}

// SetGraphOutputs declares the graph's output value names, registering each.
func (b *Builder) SetGraphOutputs(names ...string) {
	for _, n := range names {
		b.indexOf(n)
	}
	b.graphOutputs = append(b.graphOutputs, names...)
}

// SetInitializers declares the graph's initializer (weight) value names.
func (b *Builder) SetInitializers(names ...string) {
	for _, n := range names {
		b.indexOf(n)
	}
	b.initializers = append(b.initializers, names...)
}

// Build finalizes the Graph. The Builder must not be reused afterwards.
func (b *Builder) Build() *Graph {
	return &Graph{
		nodes:        b.nodes,
		valueIndex:   b.valueIndex,
		valueNames:   b.valueNames,
		valueShapes:  b.valueShapes,
		graphInputs:  b.graphInputs,
		graphOutputs: b.graphOutputs,
		initializers: b.initializers,
	}
}
