package plangraph

import "fmt"

// InvariantViolationError indicates corrupted graph state, e.g. merging nodes
// of different recipes. It is a modeling bug, not bad input, and aborts the
// calculation.
type InvariantViolationError struct {
	Op     string
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("graph invariant violated in %s: %s", e.Op, e.Reason)
}

// NodeNotFoundError indicates a node handle that is not (or no longer) part of the graph
type NodeNotFoundError struct {
	ID NodeID
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %d not found in graph", e.ID)
}

func invariantViolation(op, format string, args ...interface{}) *InvariantViolationError {
	return &InvariantViolationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
