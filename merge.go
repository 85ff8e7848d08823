package meshtopo

import "fmt"

// DroppedFace identifies an input face discarded while welding.
type DroppedFace struct {
	Mesh int // index of the input mesh
	Face int // face handle in that mesh
}

// MergeReport lists the local recoveries performed by JoinAndWeld.
type MergeReport struct {
	// CollapsedEdges counts face edges that shrank to zero length.
	CollapsedEdges int
	// DroppedFaces lists the faces left with fewer than three distinct
	// vertices, in input order.
	DroppedFaces []DroppedFace
}

// JoinAndWeld joins meshes into one, welding vertices whose coordinates
// share a geometric key at the configured precision.
//
// Vertices are interned into one shared KeyIndex mesh by mesh, so welded
// vertices keep the coordinate and attributes of their first occurrence.
// Faces are remapped to the shared handles, consecutive repeated vertices
// are removed (cyclically), and faces left with fewer than three distinct
// vertices, or walking one directed edge twice, are dropped, logged and
// listed in the report. Face attributes are copied.
//
// The inputs are not modified. Joining zero meshes yields an empty mesh.
// A vertex without a geometric key (see Keyable) fails with
// ErrInvalidInput.
func JoinAndWeld(meshes []*Mesh, opts ...Option) (*Mesh, MergeReport, error) {
	o := buildOptions(opts)
	idx, err := NewKeyIndex(o.precision)
	if err != nil {
		return nil, MergeReport{}, err
	}

	out := NewMesh()
	var report MergeReport
	for mi, m := range meshes {
		remap := make([]int, len(m.vertices))
		for v, vx := range m.vertices {
			if err := checkKeyable(vx.Pos, o.precision); err != nil {
				return nil, MergeReport{}, fmt.Errorf("mesh %d vertex %d: %w", mi, v, err)
			}
			id, added := idx.Intern(vx.Pos)
			if added {
				out.AddVertex(vx.Pos, vx.Attrs.Clone())
			}
			remap[v] = id
		}

		for fi, f := range m.faces {
			mapped := make([]int, len(f.Vertices))
			for i, v := range f.Vertices {
				mapped[i] = remap[v]
			}
			cleaned, collapsed := removeCyclicRepeats(mapped)
			report.CollapsedEdges += collapsed
			if degenerateCycle(cleaned) {
				report.DroppedFaces = append(report.DroppedFaces, DroppedFace{Mesh: mi, Face: fi})
				Logger().Warn("meshtopo: dropped degenerate face", "mesh", mi, "face", fi, "vertices", cleaned)
				continue
			}
			out.faces = append(out.faces, Face{Vertices: cleaned, Attrs: f.Attrs.Clone()})
		}
	}

	Logger().Debug("meshtopo: joined and welded",
		"meshes", len(meshes),
		"vertices", out.NumVertices(),
		"faces", out.NumFaces(),
		"collapsed_edges", report.CollapsedEdges)
	return out, report, nil
}

// Weld welds the vertices of a single mesh. It is JoinAndWeld of one mesh.
func Weld(m *Mesh, opts ...Option) (*Mesh, MergeReport, error) {
	return JoinAndWeld([]*Mesh{m}, opts...)
}

// Join concatenates meshes without comparing coordinates. Vertex handles of
// mesh k are offset by the vertex count of meshes 0..k-1; coincident
// vertices are never merged. The inputs are not modified.
func Join(meshes ...*Mesh) *Mesh {
	out := NewMesh()
	for _, m := range meshes {
		offset := out.NumVertices()
		for _, v := range m.vertices {
			out.AddVertex(v.Pos, v.Attrs.Clone())
		}
		for _, f := range m.faces {
			vs := make([]int, len(f.Vertices))
			for i, v := range f.Vertices {
				vs[i] = v + offset
			}
			out.faces = append(out.faces, Face{Vertices: vs, Attrs: f.Attrs.Clone()})
		}
	}
	return out
}

// removeCyclicRepeats drops every vertex equal to its predecessor in the
// cycle and returns the count of dropped entries.
func removeCyclicRepeats(cycle []int) ([]int, int) {
	out := make([]int, 0, len(cycle))
	for i, v := range cycle {
		if v != cycle[(i+len(cycle)-1)%len(cycle)] {
			out = append(out, v)
		}
	}
	if len(out) == 0 && len(cycle) > 0 {
		// Every vertex welded into one.
		out = append(out, cycle[0])
	}
	return out, len(cycle) - len(out)
}

// degenerateCycle reports whether a cleaned face cycle cannot be a face:
// fewer than three distinct vertices, or a directed edge used twice.
func degenerateCycle(cycle []int) bool {
	distinct := make(map[int]struct{}, len(cycle))
	for _, v := range cycle {
		distinct[v] = struct{}{}
	}
	if len(distinct) < 3 {
		return true
	}
	seen := make(map[[2]int]struct{}, len(cycle))
	for i, v := range cycle {
		he := [2]int{v, cycle[(i+1)%len(cycle)]}
		if _, ok := seen[he]; ok {
			return true
		}
		seen[he] = struct{}{}
	}
	return false
}
