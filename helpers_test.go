package meshtopo

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// gridMesh builds an nx by ny grid of unit quads in the XY plane, wound
// counter-clockwise. Vertex (i, j) has handle j*(nx+1)+i; face (i, j) has
// handle j*nx+i.
func gridMesh(t testing.TB, nx, ny int) *Mesh {
	t.Helper()
	m := NewMesh()
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.AddVertex(Pt(float64(i), float64(j), 0), nil)
		}
	}
	v := func(i, j int) int { return j*(nx+1) + i }
	for j := range ny {
		for i := range nx {
			_, err := m.AddFace([]int{v(i, j), v(i+1, j), v(i+1, j+1), v(i, j+1)}, nil)
			require.NoError(t, err)
		}
	}
	return m
}

// cubeMesh builds a closed unit cube with outward, consistently wound quads.
// Faces: bottom, top, front, right, back, left.
func cubeMesh(t testing.TB) *Mesh {
	t.Helper()
	m, err := FromVerticesAndFaces(
		[]r3.Vec{
			Pt(0, 0, 0), Pt(1, 0, 0), Pt(1, 1, 0), Pt(0, 1, 0),
			Pt(0, 0, 1), Pt(1, 0, 1), Pt(1, 1, 1), Pt(0, 1, 1),
		},
		[][]int{
			{0, 3, 2, 1},
			{4, 5, 6, 7},
			{0, 1, 5, 4},
			{1, 2, 6, 5},
			{2, 3, 7, 6},
			{3, 0, 4, 7},
		})
	require.NoError(t, err)
	return m
}

// cycleKey renders a face as its coordinate keys, rotated so that the
// smallest key comes first. Equal keys mean equal faces up to rotation and
// vertex relabeling.
func cycleKey(m *Mesh, f int) string {
	keys := make([]string, 0, len(m.faces[f].Vertices))
	for _, p := range m.FacePoints(f) {
		keys = append(keys, Key(p, 6).String())
	}
	start := 0
	for i, k := range keys {
		if k < keys[start] {
			start = i
		}
	}
	rotated := append(slices.Clone(keys[start:]), keys[:start]...)
	return strings.Join(rotated, ";")
}

// faceKeys returns the sorted cycle keys of every face of m.
func faceKeys(m *Mesh) []string {
	out := make([]string, m.NumFaces())
	for f := range out {
		out[f] = cycleKey(m, f)
	}
	slices.Sort(out)
	return out
}

// cyclesEqual reports whether a and b are the same cycle up to rotation.
func cyclesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	start := slices.Index(b, a[0])
	if start < 0 {
		return false
	}
	for i := range a {
		if a[i] != b[(start+i)%len(b)] {
			return false
		}
	}
	return true
}

// containsCycle reports whether faces holds cycle up to rotation.
func containsCycle(faces [][]int, cycle []int) bool {
	return slices.ContainsFunc(faces, func(f []int) bool { return cyclesEqual(f, cycle) })
}

// edgePolylines returns the edges of m as two-point polylines.
func edgePolylines(m *Mesh) []Polyline {
	var out []Polyline
	for _, e := range m.Edges() {
		out = append(out, Polyline{m.Position(e[0]), m.Position(e[1])})
	}
	return out
}

// faceComponents groups faces that are connected through shared vertices.
func faceComponents(m *Mesh) [][]int {
	parent := make([]int, m.NumFaces())
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	owner := make(map[int]int)
	for f, face := range m.faces {
		for _, v := range face.Vertices {
			if g, ok := owner[v]; ok {
				parent[find(f)] = find(g)
			} else {
				owner[v] = f
			}
		}
	}
	groups := make(map[int][]int)
	for f := range m.faces {
		r := find(f)
		groups[r] = append(groups[r], f)
	}
	var out [][]int
	for f := range m.faces {
		if g, ok := groups[f]; ok {
			out = append(out, g)
		}
	}
	return out
}
