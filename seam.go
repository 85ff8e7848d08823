package meshtopo

import (
	"fmt"
	"maps"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Duplicate records one vertex split performed by Unweld.
type Duplicate struct {
	Original int
	New      int
}

// EdgePath is a walk on the mesh edge graph given as directed edges.
// Consecutive edges chain: path[k][1] == path[k+1][0].
type EdgePath [][2]int

// IsClosed reports whether the walk ends where it starts.
func (p EdgePath) IsClosed() bool {
	return len(p) > 0 && p[0][0] == p[len(p)-1][1]
}

// Vertices returns the walked vertex sequence: the origin of every edge,
// followed by the last destination when the path is open.
func (p EdgePath) Vertices() []int {
	if len(p) == 0 {
		return nil
	}
	out := make([]int, 0, len(p)+1)
	for _, e := range p {
		out = append(out, e[0])
	}
	if !p.IsClosed() {
		out = append(out, p[len(p)-1][1])
	}
	return out
}

// ResolvePath converts a path given by coordinates into vertex handles of m,
// matching coordinates by geometric key at the given precision. When m holds
// several vertices with the same key, the lowest handle is used.
func ResolvePath(m *Mesh, path [][2]r3.Vec, precision int) (EdgePath, error) {
	idx, err := NewKeyIndex(precision)
	if err != nil {
		return nil, err
	}
	handles := make(map[int]int, m.NumVertices())
	for v := range m.vertices {
		if !Keyable(m.vertices[v].Pos, precision) {
			continue
		}
		id, added := idx.Intern(m.vertices[v].Pos)
		if added {
			handles[id] = v
		}
	}

	out := make(EdgePath, len(path))
	for k, e := range path {
		for j, p := range e {
			if !Keyable(p, precision) {
				return nil, &PathError{Index: k, Vertex: -1,
					Reason: fmt.Sprintf("point %v has no geometric key", p), Err: ErrInvalidInput}
			}
			id, ok := idx.Lookup(p)
			if !ok {
				return nil, &PathError{Index: k, Vertex: -1,
					Reason: fmt.Sprintf("no vertex at %v", p), Err: ErrInvalidInput}
			}
			out[k][j] = handles[id]
		}
	}
	return out, nil
}

// substitution replaces vertex old by its duplicate in one face.
type substitution struct {
	old, new int
}

// Unweld cuts m open along path.
//
// Every path vertex is duplicated when the path is closed, when it is an
// interior position of the path, or when it lies on the mesh boundary. An
// interior path endpoint away from the boundary is kept as a single hinge
// vertex. For each duplicated vertex, the faces in the wedge swept from the
// previous path vertex to the next one (in the cyclic neighbour order of
// OrderedNeighbors) switch to the duplicate. At an open boundary endpoint
// the missing path neighbour is replaced by the boundary neighbour closing
// the fan. Duplicates copy the coordinate and the attributes of the
// original vertex.
//
// All substitutions are planned first and applied in one pass. On error
// the mesh is left unchanged. Errors match ErrInvalidPath and wrap either
// ErrInvalidInput (malformed path) or ErrDegenerateTopology (path crossing
// a non-manifold vertex).
func Unweld(m *Mesh, path EdgePath) ([]Duplicate, error) {
	inc, err := m.Incidence()
	if err != nil {
		return nil, fmt.Errorf("unweld: %w", err)
	}
	if err := checkPath(m, inc, path); err != nil {
		return nil, err
	}

	closed := path.IsClosed()
	verts := path.Vertices()
	n := len(verts)
	last := n - 1

	pending := make(map[int][]substitution)
	var dups []Duplicate
	for i, v := range verts {
		boundary := inc.IsBoundaryVertex(v)
		if !closed && (i == 0 || i == last) && !boundary {
			continue
		}

		nbrs, err := inc.OrderedNeighbors(v)
		if err != nil {
			return nil, &PathError{Index: i, Vertex: v, Reason: err.Error(), Err: ErrDegenerateTopology}
		}

		prev, next := verts[(i+n-1)%n], verts[(i+1)%n]
		if !closed && boundary {
			// The fan of a boundary vertex starts and ends on the boundary.
			if i == 0 {
				prev = nbrs[len(nbrs)-1]
			}
			if i == last {
				next = nbrs[0]
			}
		}

		ia, ib := slices.Index(nbrs, prev), slices.Index(nbrs, next)
		if ia < 0 || ib < 0 {
			return nil, &PathError{Index: i, Vertex: v,
				Reason: fmt.Sprintf("neighbours %v do not contain both %d and %d", nbrs, prev, next),
				Err:    ErrDegenerateTopology}
		}
		var wedge []int
		if ia < ib {
			wedge = nbrs[ia:ib]
		} else {
			wedge = append(slices.Clone(nbrs[ia:]), nbrs[:ib]...)
		}

		dup := Duplicate{Original: v, New: m.NumVertices() + len(dups)}
		dups = append(dups, dup)
		for _, u := range wedge {
			if f, ok := inc.FaceAt(u, v); ok {
				pending[f] = append(pending[f], substitution{old: v, new: dup.New})
			}
		}
	}

	for _, d := range dups {
		orig := m.vertices[d.Original]
		m.AddVertex(orig.Pos, orig.Attrs.Clone())
	}
	faces := slices.Sorted(maps.Keys(pending))
	for _, f := range faces {
		vs := m.faces[f].Vertices
		for _, s := range pending[f] {
			if j := slices.Index(vs, s.old); j >= 0 {
				vs[j] = s.new
			}
		}
	}

	Logger().Debug("meshtopo: unwelded path",
		"edges", len(path),
		"closed", closed,
		"duplicates", len(dups),
		"faces", len(faces))
	return dups, nil
}

// checkPath validates the edge path against the mesh before any mutation.
func checkPath(m *Mesh, inc *Incidence, path EdgePath) error {
	if len(path) == 0 {
		return &PathError{Index: 0, Vertex: -1, Reason: "empty path", Err: ErrInvalidInput}
	}
	for k, e := range path {
		u, v := e[0], e[1]
		if u < 0 || u >= m.NumVertices() || v < 0 || v >= m.NumVertices() {
			return &PathError{Index: k, Vertex: -1,
				Reason: fmt.Sprintf("edge %d->%d out of range", u, v), Err: ErrInvalidInput}
		}
		if u == v || !inc.HasEdge(u, v) {
			return &PathError{Index: k, Vertex: u,
				Reason: fmt.Sprintf("%d->%d is not a mesh edge", u, v), Err: ErrInvalidInput}
		}
		if k > 0 && path[k-1][1] != u {
			return &PathError{Index: k, Vertex: u,
				Reason: fmt.Sprintf("edge %d->%d does not follow %d->%d", u, v, path[k-1][0], path[k-1][1]),
				Err:    ErrInvalidInput}
		}
	}
	seen := make(map[int]int)
	for i, v := range path.Vertices() {
		if j, ok := seen[v]; ok {
			return &PathError{Index: i, Vertex: v,
				Reason: fmt.Sprintf("vertex already visited at %d", j), Err: ErrInvalidInput}
		}
		seen[v] = i
	}
	return nil
}
