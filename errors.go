package meshtopo

import (
	"errors"
	"fmt"
)

// Sentinel errors for mesh operations. Operations wrap them with context,
// so callers should test with errors.Is.
var (
	// ErrInvalidInput is returned for malformed input data: empty or
	// single-point polylines, non-finite coordinates, out-of-range vertex
	// handles, or an unsupported precision.
	ErrInvalidInput = errors.New("meshtopo: invalid input")

	// ErrDegenerateTopology is returned when a face collapses below three
	// distinct vertices, when a directed edge is used by more than one face,
	// or when a vertex fan is non-manifold.
	ErrDegenerateTopology = errors.New("meshtopo: degenerate topology")

	// ErrUnboundedTrace is returned when a face loop visits more halfedges
	// than exist without closing. It signals inconsistent tracer input.
	ErrUnboundedTrace = errors.New("meshtopo: face trace did not close")

	// ErrInvalidPath is returned by Unweld for edge paths that are empty,
	// do not chain, leave the mesh edge graph, or cross a vertex whose
	// neighbourhood does not contain both path neighbours.
	ErrInvalidPath = errors.New("meshtopo: invalid edge path")
)

// PathError describes why an edge path was rejected by Unweld.
type PathError struct {
	// Index is the position in the edge path (for chaining errors) or in
	// the derived vertex path (for neighbourhood errors).
	Index int
	// Vertex is the vertex handle involved, or -1 when not applicable.
	Vertex int
	// Reason is a short human-readable description.
	Reason string
	// Err is the underlying sentinel (ErrInvalidInput or ErrDegenerateTopology).
	Err error
}

func (e *PathError) Error() string {
	if e.Vertex >= 0 {
		return fmt.Sprintf("%v at %d (vertex %d): %s", ErrInvalidPath, e.Index, e.Vertex, e.Reason)
	}
	return fmt.Sprintf("%v at %d: %s", ErrInvalidPath, e.Index, e.Reason)
}

// Is reports ErrInvalidPath for every PathError.
func (e *PathError) Is(target error) bool {
	return target == ErrInvalidPath
}

func (e *PathError) Unwrap() error { return e.Err }
