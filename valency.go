package meshtopo

import (
	"fmt"
	"slices"
)

// ReduceValency removes degree-2 vertices from face definitions.
//
// Every face keeps only the vertices whose valency in the whole mesh is not
// 2, in their original order, and keeps its attributes. Vertices are never
// removed from the mesh, so the vertex count is unchanged and dropped
// vertices become isolated.
//
// A face left with fewer than three vertices fails with
// ErrDegenerateTopology and the mesh is left unchanged.
func ReduceValency(m *Mesh) error {
	inc, err := m.Incidence()
	if err != nil {
		return fmt.Errorf("reduce valency: %w", err)
	}

	reduced := make([][]int, len(m.faces))
	for f, face := range m.faces {
		kept := slices.DeleteFunc(slices.Clone(face.Vertices), func(v int) bool {
			return inc.Degree(v) == 2
		})
		if len(kept) < 3 {
			return fmt.Errorf("%w: face %d collapses to %d vertices after valency reduction",
				ErrDegenerateTopology, f, len(kept))
		}
		reduced[f] = kept
	}
	for f := range m.faces {
		m.faces[f].Vertices = reduced[f]
	}
	return nil
}

// PolylinesToMesh builds a coarse mesh from polylines that cross only at
// their ends.
//
// Every polyline is split into its segments, so every sample becomes a
// vertex. The segments are traced with PolicyPositiveArea unless
// WithFacePolicy says otherwise (PolicyTriQuad would drop every face with
// more than four samples), and ReduceValency then keeps only the vertices
// where polylines meet. Segments whose ends weld together are skipped.
func PolylinesToMesh(polylines []Polyline, opts ...Option) (*Mesh, TraceReport, error) {
	o := buildOptions(opts)
	if err := checkPrecision(o.precision); err != nil {
		return nil, TraceReport{}, err
	}

	var segments []Polyline
	skipped := 0
	for i, pl := range polylines {
		if len(pl) < 2 {
			return nil, TraceReport{}, fmt.Errorf("%w: polyline %d has %d points", ErrInvalidInput, i, len(pl))
		}
		for j := range len(pl) - 1 {
			a, b := pl[j], pl[j+1]
			if Key(a, o.precision) == Key(b, o.precision) {
				skipped++
				continue
			}
			segments = append(segments, Polyline{a, b})
		}
	}
	if skipped > 0 {
		Logger().Warn("meshtopo: skipped zero-length segments", "count", skipped)
	}

	if !o.policySet {
		opts = append(slices.Clone(opts), WithFacePolicy(PolicyPositiveArea))
	}
	m, report, err := TraceFaces(segments, opts...)
	if err != nil {
		return nil, TraceReport{}, err
	}
	if err := ReduceValency(m); err != nil {
		return nil, TraceReport{}, err
	}
	return m, report, nil
}
