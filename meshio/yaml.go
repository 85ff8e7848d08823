package meshio

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/meshtopo"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a mesh. Vertices have two or three
// coordinates; a missing Z is zero. Attribute lists are either empty or
// indexed like Vertices and Faces.
type Document struct {
	Vertices         [][]float64      `yaml:"vertices"`
	Faces            [][]int          `yaml:"faces"`
	VertexAttributes []map[string]any `yaml:"vertex_attributes,omitempty"`
	FaceAttributes   []map[string]any `yaml:"face_attributes,omitempty"`
}

// NewDocument converts m into its YAML document.
func NewDocument(m *meshtopo.Mesh) *Document {
	doc := &Document{
		Vertices: make([][]float64, m.NumVertices()),
		Faces:    m.FaceList(),
	}
	var vattrs, fattrs bool
	for v := range doc.Vertices {
		p := m.Position(v)
		doc.Vertices[v] = []float64{p.X, p.Y, p.Z}
		vattrs = vattrs || len(m.VertexAttrs(v)) > 0
	}
	for f := range doc.Faces {
		fattrs = fattrs || len(m.FaceAttrs(f)) > 0
	}
	if vattrs {
		doc.VertexAttributes = make([]map[string]any, m.NumVertices())
		for v := range doc.VertexAttributes {
			doc.VertexAttributes[v] = m.VertexAttrs(v)
		}
	}
	if fattrs {
		doc.FaceAttributes = make([]map[string]any, m.NumFaces())
		for f := range doc.FaceAttributes {
			doc.FaceAttributes[f] = m.FaceAttrs(f)
		}
	}
	return doc
}

// Mesh builds the mesh described by the document.
func (d *Document) Mesh() (*meshtopo.Mesh, error) {
	if len(d.VertexAttributes) > 0 && len(d.VertexAttributes) != len(d.Vertices) {
		return nil, fmt.Errorf("%w: %d vertex attribute entries for %d vertices",
			meshtopo.ErrInvalidInput, len(d.VertexAttributes), len(d.Vertices))
	}
	if len(d.FaceAttributes) > 0 && len(d.FaceAttributes) != len(d.Faces) {
		return nil, fmt.Errorf("%w: %d face attribute entries for %d faces",
			meshtopo.ErrInvalidInput, len(d.FaceAttributes), len(d.Faces))
	}

	m := meshtopo.NewMesh()
	for i, c := range d.Vertices {
		p, err := vec(c)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		var attrs meshtopo.Attributes
		if len(d.VertexAttributes) > 0 {
			attrs = d.VertexAttributes[i]
		}
		m.AddVertex(p, attrs)
	}
	for i, f := range d.Faces {
		var attrs meshtopo.Attributes
		if len(d.FaceAttributes) > 0 {
			attrs = d.FaceAttributes[i]
		}
		if _, err := m.AddFace(f, attrs); err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
	}
	return m, nil
}

// ReadMesh decodes a YAML mesh document.
func ReadMesh(r io.Reader) (*meshtopo.Mesh, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return meshtopo.NewMesh(), nil
		}
		return nil, fmt.Errorf("decode mesh: %w", err)
	}
	return doc.Mesh()
}

// WriteMesh encodes m as a YAML mesh document.
func WriteMesh(w io.Writer, m *meshtopo.Mesh) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(m)); err != nil {
		return fmt.Errorf("encode mesh: %w", err)
	}
	return enc.Close()
}

// pathDocument accepts either vertex handles or coordinates per edge.
type pathDocument struct {
	Edges  [][2]int       `yaml:"edges"`
	Points [][2][]float64 `yaml:"points"`
}

// EdgePathInput is an edge path read from YAML. Exactly one of Edges and
// Points is set.
type EdgePathInput struct {
	Edges  meshtopo.EdgePath
	Points [][2]r3.Vec
}

// Resolve returns the edge path on m, matching coordinates by geometric key
// at the given precision when the path was given by points.
func (s EdgePathInput) Resolve(m *meshtopo.Mesh, precision int) (meshtopo.EdgePath, error) {
	if s.Points == nil {
		return s.Edges, nil
	}
	return meshtopo.ResolvePath(m, s.Points, precision)
}

// ReadEdgePath decodes an edge path document:
//
//	edges: [[1, 4], [4, 7]]
//
// or, by coordinates,
//
//	points: [[[1, 0], [1, 1]], [[1, 1], [1, 2]]]
func ReadEdgePath(r io.Reader) (EdgePathInput, error) {
	var doc pathDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return EdgePathInput{}, fmt.Errorf("decode edge path: %w", err)
	}
	switch {
	case len(doc.Edges) > 0 && len(doc.Points) > 0:
		return EdgePathInput{}, fmt.Errorf("%w: edge path has both edges and points", meshtopo.ErrInvalidInput)
	case len(doc.Edges) > 0:
		return EdgePathInput{Edges: meshtopo.EdgePath(doc.Edges)}, nil
	case len(doc.Points) > 0:
		in := EdgePathInput{Points: make([][2]r3.Vec, len(doc.Points))}
		for k, e := range doc.Points {
			for j, c := range e {
				p, err := vec(c)
				if err != nil {
					return EdgePathInput{}, fmt.Errorf("edge %d: %w", k, err)
				}
				in.Points[k][j] = p
			}
		}
		return in, nil
	}
	return EdgePathInput{}, fmt.Errorf("%w: empty edge path", meshtopo.ErrInvalidInput)
}

func vec(c []float64) (r3.Vec, error) {
	switch len(c) {
	case 2:
		return r3.Vec{X: c[0], Y: c[1]}, nil
	case 3:
		return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
	}
	return r3.Vec{}, fmt.Errorf("%w: coordinate with %d components", meshtopo.ErrInvalidInput, len(c))
}
