package meshtopo

import (
	"fmt"
	"slices"
)

// Incidence is a derived, read-only adjacency view of a Mesh.
//
// It maps every directed halfedge u→v used by a face to that face, and every
// vertex to its neighbours. An Incidence is a snapshot: it is not updated
// when the mesh changes and must be rebuilt after any mutation.
type Incidence struct {
	m         *Mesh
	halfedges map[[2]int]int
	nbrs      [][]int
}

// Incidence builds the adjacency view of the mesh. It fails with
// ErrDegenerateTopology when a directed halfedge belongs to two faces
// (inconsistent winding or a non-manifold edge).
func (m *Mesh) Incidence() (*Incidence, error) {
	inc := &Incidence{
		m:         m,
		halfedges: make(map[[2]int]int),
		nbrs:      make([][]int, len(m.vertices)),
	}
	for fi, f := range m.faces {
		n := len(f.Vertices)
		for i, u := range f.Vertices {
			v := f.Vertices[(i+1)%n]
			he := [2]int{u, v}
			if other, ok := inc.halfedges[he]; ok {
				return nil, fmt.Errorf("%w: halfedge %d->%d used by faces %d and %d",
					ErrDegenerateTopology, u, v, other, fi)
			}
			inc.halfedges[he] = fi
			inc.nbrs[u] = append(inc.nbrs[u], v)
			inc.nbrs[v] = append(inc.nbrs[v], u)
		}
	}
	for v, ns := range inc.nbrs {
		slices.Sort(ns)
		inc.nbrs[v] = slices.Compact(ns)
	}
	return inc, nil
}

// FaceAt returns the face that contains the directed halfedge u→v.
func (inc *Incidence) FaceAt(u, v int) (int, bool) {
	f, ok := inc.halfedges[[2]int{u, v}]
	return f, ok
}

// HasEdge reports whether u and v are joined by an edge of some face.
func (inc *Incidence) HasEdge(u, v int) bool {
	_, a := inc.halfedges[[2]int{u, v}]
	_, b := inc.halfedges[[2]int{v, u}]
	return a || b
}

// Neighbors returns the neighbours of v in ascending handle order.
func (inc *Incidence) Neighbors(v int) []int {
	return slices.Clone(inc.nbrs[v])
}

// Degree returns the number of edges incident to v (its valency).
func (inc *Incidence) Degree(v int) int {
	return len(inc.nbrs[v])
}

// IsBoundaryEdge reports whether the edge u-v exists and is used by exactly
// one face.
func (inc *Incidence) IsBoundaryEdge(u, v int) bool {
	_, a := inc.halfedges[[2]int{u, v}]
	_, b := inc.halfedges[[2]int{v, u}]
	return a != b
}

// IsBoundaryVertex reports whether v has an incident boundary edge.
// Isolated vertices are not on the boundary.
func (inc *Incidence) IsBoundaryVertex(v int) bool {
	for _, u := range inc.nbrs[v] {
		if inc.IsBoundaryEdge(v, u) {
			return true
		}
	}
	return false
}

// BoundaryVertices returns every boundary vertex in ascending order.
func (inc *Incidence) BoundaryVertices() []int {
	var out []int
	for v := range inc.nbrs {
		if inc.IsBoundaryVertex(v) {
			out = append(out, v)
		}
	}
	return out
}

// OrderedNeighbors returns the neighbours of v in cyclic order around v.
//
// Consecutive neighbours a, b are separated by the face containing
// a→v→b. For a boundary vertex the walk starts at the neighbour u whose
// halfedge v→u has no face and ends at the neighbour whose halfedge
// toward v has no face, so the first and last entries are the two
// boundary neighbours. For an interior vertex it starts at the smallest
// neighbour.
//
// A non-manifold vertex (several fans) yields only the fan containing the
// start neighbour; callers detect the missing neighbours themselves.
func (inc *Incidence) OrderedNeighbors(v int) ([]int, error) {
	nbrs := inc.nbrs[v]
	if len(nbrs) < 2 {
		return slices.Clone(nbrs), nil
	}

	start := nbrs[0]
	for _, u := range nbrs {
		if _, ok := inc.halfedges[[2]int{v, u}]; !ok {
			start = u
			break
		}
	}

	out := []int{start}
	f, ok := inc.halfedges[[2]int{start, v}]
	for guard := len(nbrs) + 1; ok; guard-- {
		if guard == 0 {
			return nil, fmt.Errorf("%w: neighbour walk around vertex %d does not close", ErrDegenerateTopology, v)
		}
		next := inc.successor(f, v)
		if next == start {
			break
		}
		out = append(out, next)
		f, ok = inc.halfedges[[2]int{next, v}]
	}
	return out, nil
}

// successor returns the vertex following v in face f.
func (inc *Incidence) successor(f, v int) int {
	vs := inc.m.faces[f].Vertices
	i := slices.Index(vs, v)
	return vs[(i+1)%len(vs)]
}
