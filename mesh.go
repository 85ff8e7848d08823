package meshtopo

import (
	"fmt"
	"maps"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Attributes is the open attribute map carried by vertices and faces.
type Attributes map[string]any

// Clone returns a shallow copy of a. A nil map stays nil.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Vertex is a mesh vertex: a coordinate plus attributes.
type Vertex struct {
	Pos   r3.Vec
	Attrs Attributes
}

// Face is an ordered cycle of vertex handles plus attributes.
// The order of Vertices fixes the face winding.
type Face struct {
	Vertices []int
	Attrs    Attributes
}

// Mesh is a polygon mesh stored as arenas of vertices and faces.
//
// Vertices and faces are addressed by integer handles (their index in the
// arena). Handles are stable: operations append vertices and rebuild faces
// in place, but never remove entries. Adjacency is not stored; it is derived
// on demand with Incidence.
//
// A Mesh is not safe for concurrent mutation. Callers must serialize
// operations that modify the same mesh (Unweld, ReduceValency, AddFace...).
type Mesh struct {
	vertices []Vertex
	faces    []Face
}

// NewMesh creates an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// FromVerticesAndFaces creates a mesh from coordinates and face cycles.
func FromVerticesAndFaces(points []r3.Vec, faces [][]int) (*Mesh, error) {
	m := &Mesh{vertices: make([]Vertex, 0, len(points)), faces: make([]Face, 0, len(faces))}
	for _, p := range points {
		m.AddVertex(p, nil)
	}
	for i, f := range faces {
		if _, err := m.AddFace(f, nil); err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
	}
	return m, nil
}

// AddVertex appends a vertex and returns its handle. The attribute map is
// stored as given.
func (m *Mesh) AddVertex(p r3.Vec, attrs Attributes) int {
	m.vertices = append(m.vertices, Vertex{Pos: p, Attrs: attrs})
	return len(m.vertices) - 1
}

// AddFace appends a face and returns its handle.
//
// The cycle must have at least three vertices, reference existing vertices,
// and must not repeat a vertex consecutively (including last-to-first).
func (m *Mesh) AddFace(vertices []int, attrs Attributes) (int, error) {
	if err := m.checkCycle(vertices); err != nil {
		return -1, err
	}
	m.faces = append(m.faces, Face{Vertices: slices.Clone(vertices), Attrs: attrs})
	return len(m.faces) - 1, nil
}

func (m *Mesh) checkCycle(vertices []int) error {
	if len(vertices) < 3 {
		return fmt.Errorf("%w: face has %d vertices", ErrDegenerateTopology, len(vertices))
	}
	for i, v := range vertices {
		if v < 0 || v >= len(m.vertices) {
			return fmt.Errorf("%w: vertex handle %d out of range", ErrInvalidInput, v)
		}
		if v == vertices[(i+1)%len(vertices)] {
			return fmt.Errorf("%w: vertex %d repeated consecutively", ErrDegenerateTopology, v)
		}
	}
	return nil
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int { return len(m.faces) }

// Position returns the coordinate of vertex v.
func (m *Mesh) Position(v int) r3.Vec { return m.vertices[v].Pos }

// VertexAttrs returns the attribute map of vertex v (not a copy).
func (m *Mesh) VertexAttrs(v int) Attributes { return m.vertices[v].Attrs }

// FaceVertices returns a copy of the vertex cycle of face f.
func (m *Mesh) FaceVertices(f int) []int { return slices.Clone(m.faces[f].Vertices) }

// FaceAttrs returns the attribute map of face f (not a copy).
func (m *Mesh) FaceAttrs(f int) Attributes { return m.faces[f].Attrs }

// FacePoints returns the coordinates of the vertices of face f in order.
func (m *Mesh) FacePoints(f int) []r3.Vec {
	vs := m.faces[f].Vertices
	out := make([]r3.Vec, len(vs))
	for i, v := range vs {
		out[i] = m.vertices[v].Pos
	}
	return out
}

// Points returns the coordinates of all vertices indexed by handle.
func (m *Mesh) Points() []r3.Vec {
	out := make([]r3.Vec, len(m.vertices))
	for i, v := range m.vertices {
		out[i] = v.Pos
	}
	return out
}

// FaceList returns a copy of every face cycle indexed by handle.
func (m *Mesh) FaceList() [][]int {
	out := make([][]int, len(m.faces))
	for i, f := range m.faces {
		out[i] = slices.Clone(f.Vertices)
	}
	return out
}

// Edges returns the undirected edges of the mesh as (min, max) pairs, in
// the order they are first met walking the faces.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]struct{})
	var out [][2]int
	for _, f := range m.faces {
		n := len(f.Vertices)
		for i, u := range f.Vertices {
			e := undirected(u, f.Vertices[(i+1)%n])
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy of the mesh. Attribute maps are shallow-copied.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		vertices: make([]Vertex, len(m.vertices)),
		faces:    make([]Face, len(m.faces)),
	}
	for i, v := range m.vertices {
		c.vertices[i] = Vertex{Pos: v.Pos, Attrs: v.Attrs.Clone()}
	}
	for i, f := range m.faces {
		c.faces[i] = Face{Vertices: slices.Clone(f.Vertices), Attrs: f.Attrs.Clone()}
	}
	return c
}

// Validate checks the face cycles and the halfedge invariant: every
// directed edge belongs to at most one face, so an interior edge is shared
// by exactly two faces with opposite winding.
func (m *Mesh) Validate() error {
	for i, f := range m.faces {
		if err := m.checkCycle(f.Vertices); err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
	}
	_, err := m.Incidence()
	return err
}

func undirected(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}
