package planner

import "fmt"

// Kind enumerates the fatal, reportable planning failures.
// There are no warnings and no retries: any of these aborts planning and
// the caller gets no plan.
type Kind int

const (
	// GraphUnavailable means no graph was bound in the session state.
	GraphUnavailable Kind = iota
	// TopologicalOrderUnavailable means the topological-order provider
	// returned an error.
	TopologicalOrderUnavailable
	// MissingKernel means a scheduled node lacks a bound kernel definition.
	MissingKernel
	// UnknownValue means a value-name lookup failed.
	UnknownValue
)

func (k Kind) String() string {
	switch k {
	case GraphUnavailable:
		return "GraphUnavailable"
	case TopologicalOrderUnavailable:
		return "TopologicalOrderUnavailable"
	case MissingKernel:
		return "MissingKernel"
	case UnknownValue:
		return "UnknownValue"
	default:
		return "UnknownErrorKind"
	}
}

// Error is the typed error CreatePlan returns on a fatal condition. It
// carries enough context to let a caller reproduce and fix the upstream
// mistake (a missing kernel binding, a stale value name) without needing to
// parse a message string.
type Error struct {
	Kind     Kind
	OpType   string
	NodeName string
	Value    string
	Cause    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingKernel:
		if e.NodeName != "" {
			return fmt.Sprintf("planner: no kernel definition bound for op %q (node %q)", e.OpType, e.NodeName)
		}
		return fmt.Sprintf("planner: no kernel definition bound for op %q", e.OpType)
	case UnknownValue:
		return fmt.Sprintf("planner: unknown value %q", e.Value)
	case TopologicalOrderUnavailable:
		if e.Cause != nil {
			return fmt.Sprintf("planner: topological order unavailable: %v", e.Cause)
		}
		return "planner: topological order unavailable"
	case GraphUnavailable:
		return "planner: no graph bound"
	default:
		return "planner: planning failed"
	}
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As chains built
// with github.com/pkg/errors on the caller side.
func (e *Error) Unwrap() error { return e.Cause }

func missingKernelErr(opType, nodeName string) *Error {
	return &Error{Kind: MissingKernel, OpType: opType, NodeName: nodeName}
}

func unknownValueErr(name string) *Error {
	return &Error{Kind: UnknownValue, Value: name}
}
