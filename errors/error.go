package errors

import (
	"fmt"
)

// MissingAttributeError occurs when a Vertex or Edge is missing an attribute required by a Pass
type MissingAttributeError struct {
	Kind string // "vertex" or "edge"
	ID   string
	Key  string
}

// Error returns a textual representation of this MissingAttributeError
func (e MissingAttributeError) Error() string {
	return fmt.Sprintf("%s %s is missing required attribute %s", e.Kind, e.ID, e.Key)
}

// CyclicGraphError occurs when a DAG is built from edges which form a cycle
type CyclicGraphError struct{ NumUnordered int }

// Error returns a textual representation of this CyclicGraphError
func (e CyclicGraphError) Error() string {
	return fmt.Sprintf("Graph contains a cycle involving %d vertices", e.NumUnordered)
}

// DuplicateVertexError occurs when a Vertex is added twice to the same DAGBuilder
type DuplicateVertexError struct{ ID string }

// Error returns a textual representation of this DuplicateVertexError
func (e DuplicateVertexError) Error() string {
	return fmt.Sprintf("Vertex %s has already been added to this DAG", e.ID)
}

// UnknownVertexError occurs when an Edge endpoint does not belong to the DAG under construction
type UnknownVertexError struct{ ID string }

// Error returns a textual representation of this UnknownVertexError
func (e UnknownVertexError) Error() string {
	return fmt.Sprintf("Vertex %s does not belong to this DAG", e.ID)
}

// ConnectionClosedError occurs when a MessageSender is closed while replies are still pending
type ConnectionClosedError struct{}

// Error returns a textual representation of this ConnectionClosedError
func (e ConnectionClosedError) Error() string {
	return "Connection closed before a reply arrived"
}

// DuplicateRequestError occurs when two outstanding requests share a message identifier
type DuplicateRequestError struct{ ID int64 }

// Error returns a textual representation of this DuplicateRequestError
func (e DuplicateRequestError) Error() string {
	return fmt.Sprintf("A request with message id %d is already pending", e.ID)
}

// ChecksumMismatchError occurs when a received frame fails checksum verification
type ChecksumMismatchError struct{ Expected, Actual uint64 }

// Error returns a textual representation of this ChecksumMismatchError
func (e ChecksumMismatchError) Error() string {
	return fmt.Sprintf("Frame checksum mismatch: expected %x but computed %x", e.Expected, e.Actual)
}

// FrameTooLargeError occurs when a frame exceeds the connection's maximum frame size
type FrameTooLargeError struct{ Size, Max int }

// Error returns a textual representation of this FrameTooLargeError
func (e FrameTooLargeError) Error() string {
	return fmt.Sprintf("Frame of %d bytes exceeds maximum frame size %d", e.Size, e.Max)
}
