package meshtopo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func triangle(t testing.TB, a, b, c r3.Vec) *Mesh {
	t.Helper()
	m, err := FromVerticesAndFaces([]r3.Vec{a, b, c}, [][]int{{0, 1, 2}})
	require.NoError(t, err)
	return m
}

// twoTriangles returns two triangles sharing the edge (1,0)-(0,1).
func twoTriangles(t testing.TB) (*Mesh, *Mesh) {
	return triangle(t, Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0)),
		triangle(t, Pt(1, 0, 0), Pt(1, 1, 0), Pt(0, 1, 0))
}

// =============================================================================
// JoinAndWeld
// =============================================================================

func TestJoinAndWeld(t *testing.T) {
	a, b := twoTriangles(t)

	m, report, err := JoinAndWeld([]*Mesh{a, b})
	require.NoError(t, err)

	assert.Equal(t, []r3.Vec{Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0), Pt(1, 1, 0)}, m.Points())
	assert.Equal(t, [][]int{{0, 1, 2}, {1, 3, 2}}, m.FaceList())
	assert.Zero(t, report.CollapsedEdges)
	assert.Empty(t, report.DroppedFaces)
	assert.NoError(t, m.Validate())
}

func TestJoinAndWeld_Precision(t *testing.T) {
	a := triangle(t, Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0))
	b := triangle(t, Pt(1.004, 0, 0), Pt(1, 1, 0), Pt(0, 1.004, 0))

	tests := []struct {
		precision int
		vertices  int
	}{
		{3, 6},
		{2, 4},
		{0, 4},
	}
	for _, tt := range tests {
		m, _, err := JoinAndWeld([]*Mesh{a, b}, WithPrecision(tt.precision))
		require.NoError(t, err)
		assert.Equal(t, tt.vertices, m.NumVertices(), "precision %d", tt.precision)
	}
}

func TestJoinAndWeld_FirstOccurrenceWins(t *testing.T) {
	a, b := twoTriangles(t)
	a.vertices[1].Attrs = Attributes{"from": "a"}
	b.vertices[0].Attrs = Attributes{"from": "b"}
	b.vertices[1].Attrs = Attributes{"from": "b"}
	b.faces[0].Attrs = Attributes{"face": "b"}

	m, _, err := JoinAndWeld([]*Mesh{a, b})
	require.NoError(t, err)

	assert.Equal(t, "a", m.VertexAttrs(1)["from"])
	assert.Equal(t, "b", m.VertexAttrs(3)["from"])
	assert.Equal(t, "b", m.FaceAttrs(1)["face"])

	// Attribute maps are copies.
	m.VertexAttrs(1)["from"] = "changed"
	assert.Equal(t, "a", a.VertexAttrs(1)["from"])
}

func TestJoinAndWeld_CollapsesEdges(t *testing.T) {
	t.Run("quad loses a vertex", func(t *testing.T) {
		m, err := FromVerticesAndFaces(
			[]r3.Vec{Pt(0, 0, 0), Pt(1, 0, 0), Pt(1, 0.0001, 0), Pt(0, 1, 0)},
			[][]int{{0, 1, 2, 3}})
		require.NoError(t, err)

		w, report, err := Weld(m)
		require.NoError(t, err)
		assert.Equal(t, 3, w.NumVertices())
		assert.Equal(t, [][]int{{0, 1, 2}}, w.FaceList())
		assert.Equal(t, 1, report.CollapsedEdges)
		assert.Empty(t, report.DroppedFaces)
	})

	t.Run("sliver triangle is dropped", func(t *testing.T) {
		keep := triangle(t, Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0))
		sliver := triangle(t, Pt(5, 5, 0), Pt(5.0001, 5, 0), Pt(6, 6, 0))

		m, report, err := JoinAndWeld([]*Mesh{keep, sliver})
		require.NoError(t, err)
		assert.Equal(t, 1, m.NumFaces())
		assert.Equal(t, 5, m.NumVertices())
		assert.Equal(t, []DroppedFace{{Mesh: 1, Face: 0}}, report.DroppedFaces)
		assert.Equal(t, 1, report.CollapsedEdges)
	})

	t.Run("opposite corners weld pairwise", func(t *testing.T) {
		m, err := FromVerticesAndFaces(
			[]r3.Vec{Pt(0, 0, 0), Pt(1, 0, 0), Pt(0.0001, 0, 0), Pt(1.0001, 0, 0)},
			[][]int{{0, 1, 2, 3}})
		require.NoError(t, err)

		w, report, err := Weld(m)
		require.NoError(t, err)
		assert.Equal(t, 2, w.NumVertices())
		assert.Zero(t, w.NumFaces())
		assert.Equal(t, []DroppedFace{{Mesh: 0, Face: 0}}, report.DroppedFaces)
		assert.Zero(t, report.CollapsedEdges)
		assert.NoError(t, w.Validate())
	})

	t.Run("directed edge walked twice", func(t *testing.T) {
		// Vertices 4 and 5 weld onto 0 and 1, so the hexagon walks 0->1 twice.
		m, err := FromVerticesAndFaces(
			[]r3.Vec{Pt(0, 0, 0), Pt(1, 0, 0), Pt(1, 1, 0), Pt(0.0001, 0, 0), Pt(1.0001, 0, 0), Pt(0, 1, 0)},
			[][]int{{0, 1, 2, 3, 4, 5}})
		require.NoError(t, err)

		w, report, err := Weld(m)
		require.NoError(t, err)
		assert.Zero(t, w.NumFaces())
		assert.Equal(t, []DroppedFace{{Mesh: 0, Face: 0}}, report.DroppedFaces)
		assert.NoError(t, w.Validate())
	})
}

func TestJoinAndWeld_RejectsUnkeyableVertices(t *testing.T) {
	tests := []struct {
		name      string
		p         r3.Vec
		precision int
	}{
		{"nan", Pt(math.NaN(), 0, 0), DefaultPrecision},
		{"inf", Pt(0, math.Inf(1), 0), DefaultPrecision},
		{"overflows when scaled", Pt(1e300, 0, 0), MaxPrecision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := triangle(t, Pt(0, 0, 0), Pt(1, 0, 0), tt.p)
			_, _, err := Weld(m, WithPrecision(tt.precision))
			assert.True(t, errors.Is(err, ErrInvalidInput), "%v", err)
		})
	}
}

func TestJoinAndWeld_LargeCoordinates(t *testing.T) {
	// Two triangles 100 km apart in projected coordinates stay apart at
	// the finest precision.
	a := triangle(t, Pt(500000, 9500000, 0), Pt(500001, 9500000, 0), Pt(500000, 9500001, 0))
	b := triangle(t, Pt(500000, 9600000, 0), Pt(500001, 9600000, 0), Pt(500000, 9600001, 0))

	m, _, err := JoinAndWeld([]*Mesh{a, b}, WithPrecision(MaxPrecision))
	require.NoError(t, err)
	assert.Equal(t, 6, m.NumVertices())
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}}, m.FaceList())
}

func TestJoinAndWeld_Idempotent(t *testing.T) {
	a, b := twoTriangles(t)
	once, _, err := JoinAndWeld([]*Mesh{a, b, gridMesh(t, 2, 2)})
	require.NoError(t, err)

	twice, report, err := Weld(once)
	require.NoError(t, err)
	assert.Equal(t, once.Points(), twice.Points())
	assert.Equal(t, once.FaceList(), twice.FaceList())
	assert.Zero(t, report.CollapsedEdges)
}

func TestJoinAndWeld_Associative(t *testing.T) {
	a, b := twoTriangles(t)
	c := gridMesh(t, 1, 2)

	flat, _, err := JoinAndWeld([]*Mesh{a, b, c})
	require.NoError(t, err)

	ab, _, err := JoinAndWeld([]*Mesh{a, b})
	require.NoError(t, err)
	nested, _, err := JoinAndWeld([]*Mesh{ab, c})
	require.NoError(t, err)

	assert.Equal(t, flat.Points(), nested.Points())
	assert.Equal(t, flat.FaceList(), nested.FaceList())
}

func TestJoinAndWeld_LeavesInputsUntouched(t *testing.T) {
	a, b := twoTriangles(t)
	wantA, wantB := a.Clone(), b.Clone()

	_, _, err := JoinAndWeld([]*Mesh{a, b})
	require.NoError(t, err)
	assert.Equal(t, wantA, a)
	assert.Equal(t, wantB, b)
}

func TestJoinAndWeld_Edges(t *testing.T) {
	m, report, err := JoinAndWeld(nil)
	require.NoError(t, err)
	assert.Zero(t, m.NumVertices())
	assert.Zero(t, m.NumFaces())
	assert.Empty(t, report.DroppedFaces)

	_, _, err = JoinAndWeld([]*Mesh{NewMesh()}, WithPrecision(MaxPrecision+1))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

// =============================================================================
// Join
// =============================================================================

func TestJoin(t *testing.T) {
	a, b := twoTriangles(t)

	m := Join(a, b)
	assert.Equal(t, 6, m.NumVertices())
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}}, m.FaceList())
	assert.Equal(t, m.Position(1), m.Position(3))

	// Coincident vertices stay apart, so 1-2 and 3-5 are distinct edges.
	assert.Len(t, m.Edges(), 6)
	assert.Zero(t, Join().NumVertices())
}

func TestJoin_Associative(t *testing.T) {
	a, b := twoTriangles(t)
	c := gridMesh(t, 1, 2)
	a.vertices[0].Attrs = Attributes{"from": "a"}
	c.faces[1].Attrs = Attributes{"face": "c"}

	flat := Join(a, b, c)
	left := Join(Join(a, b), c)
	right := Join(a, Join(b, c))

	for name, nested := range map[string]*Mesh{"left": left, "right": right} {
		assert.Equal(t, flat.Points(), nested.Points(), name)
		assert.Equal(t, flat.FaceList(), nested.FaceList(), name)
		assert.Equal(t, flat, nested, name)
	}
	assert.Equal(t, 3+3+6, flat.NumVertices())
	assert.Equal(t, []int{8, 9, 11, 10}, flat.FaceVertices(3))
	assert.Equal(t, "c", flat.FaceAttrs(3)["face"])
}

func TestRemoveCyclicRepeats(t *testing.T) {
	tests := []struct {
		in        []int
		want      []int
		collapsed int
	}{
		{[]int{0, 1, 2}, []int{0, 1, 2}, 0},
		{[]int{0, 1, 1, 2}, []int{0, 1, 2}, 1},
		{[]int{0, 1, 2, 0}, []int{1, 2, 0}, 1},
		{[]int{3, 3, 3}, []int{3}, 2},
		{[]int{}, []int{}, 0},
	}
	for _, tt := range tests {
		got, n := removeCyclicRepeats(tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
		assert.Equal(t, tt.collapsed, n, "input %v", tt.in)
	}
}
