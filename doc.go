// Package meshtopo rebuilds and edits the topology of polygon meshes.
//
// # Overview
//
// meshtopo works on meshes stored as arenas of vertices and faces addressed
// by integer handles. Four operations cover the usual topology chores:
//
//   - TraceFaces recovers faces from an unordered set of edges (polylines
//     whose end points meet), by sorting halfedges around each vertex and
//     following the face loops.
//   - ReduceValency and PolylinesToMesh turn densely sampled polylines into
//     a coarse mesh whose vertices are the polyline crossings.
//   - JoinAndWeld merges meshes and fuses vertices that share a geometric
//     key, the coordinate rounded to a fixed number of decimal digits.
//   - Unweld cuts a mesh open along an edge path by duplicating vertices.
//
// # Quick Start
//
//	edges := []meshtopo.Polyline{
//	    {meshtopo.Pt(0, 0, 0), meshtopo.Pt(1, 0, 0)},
//	    {meshtopo.Pt(1, 0, 0), meshtopo.Pt(1, 1, 0)},
//	    {meshtopo.Pt(1, 1, 0), meshtopo.Pt(0, 1, 0)},
//	    {meshtopo.Pt(0, 1, 0), meshtopo.Pt(0, 0, 0)},
//	}
//	m, report, err := meshtopo.TraceFaces(edges,
//	    meshtopo.WithFacePolicy(meshtopo.PolicyPositiveArea))
//
// # Coordinate System
//
// Coordinates are gonum r3.Vec values. Tracing works on the projection on
// the XY plane: angles are measured counter-clockwise from +X, interior
// faces come out counter-clockwise and the outer loop clockwise. Z is
// carried through unchanged.
//
// # Errors
//
// Operations return wrapped sentinel errors (ErrInvalidInput,
// ErrDegenerateTopology, ErrUnboundedTrace, ErrInvalidPath); test them with
// errors.Is. Mutating operations plan every change before applying it and
// leave the mesh unchanged on error.
//
// # Concurrency
//
// A Mesh is not safe for concurrent mutation. Independent meshes can be
// processed in parallel with Batch and TraceAll.
package meshtopo
