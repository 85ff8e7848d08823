package meshtopo

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Polyline is an ordered sequence of points. As tracer input it stands for
// a single edge between its first and last point; the interior samples only
// provide the local tangent at each end.
type Polyline []r3.Vec

// AngleLess orders two outgoing halfedges at a vertex by their planar
// direction angles. It must be a strict weak ordering. Halfedges it does not
// order keep their input order.
type AngleLess func(a, b float64) bool

// AscendingAngle is the default AngleLess: counter-clockwise from +X.
func AscendingAngle(a, b float64) bool { return a < b }

// TraceReport summarizes a TraceFaces run.
type TraceReport struct {
	// Halfedges is the number of halfedges built (twice the edge count).
	Halfedges int
	// Loops is the number of closed loops traced before filtering.
	Loops int
	// Rejected holds the vertex cycles of the loops that did not become
	// faces, in trace order.
	Rejected [][]int
}

// halfedge is one direction of an input edge. Halfedge 2k runs from the
// start of edge k to its end, 2k+1 runs back; they are each other's flip.
type halfedge struct {
	origin, dest int
	flip         int
	angle        float64
}

// halfedgeGraph is the transient tracing structure: welded vertices,
// halfedges, and each vertex's outgoing halfedges in angular order.
type halfedgeGraph struct {
	points []r3.Vec
	he     []halfedge
	fan    [][]int // vertex -> outgoing halfedge ids, sorted
	pos    []int   // halfedge id -> position in its origin's fan
}

// TraceFaces reconstructs faces from an unordered set of edges.
//
// Endpoints are welded at the configured precision (first-seen order:
// start then end of each edge). Each edge yields two halfedges whose
// direction is the local tangent of the polyline at their origin, not the
// chord. Outgoing halfedges are sorted around every vertex and loops are
// traced by always continuing with the halfedge preceding the flip of the
// current one. The configured FacePolicy decides which loops become faces;
// the others are listed in the report.
//
// Errors: ErrInvalidInput for edges with fewer than two points, points
// without a geometric key (see Keyable) or no planar extent; ErrUnboundedTrace when a loop does not
// close.
func TraceFaces(edges []Polyline, opts ...Option) (*Mesh, TraceReport, error) {
	o := buildOptions(opts)
	if err := checkPrecision(o.precision); err != nil {
		return nil, TraceReport{}, err
	}

	g, err := newHalfedgeGraph(edges, o)
	if err != nil {
		return nil, TraceReport{}, err
	}
	loops, err := g.trace()
	if err != nil {
		return nil, TraceReport{}, err
	}

	m := &Mesh{vertices: make([]Vertex, 0, len(g.points))}
	for _, p := range g.points {
		m.AddVertex(p, nil)
	}

	report := TraceReport{Halfedges: len(g.he), Loops: len(loops)}
	for _, loop := range loops {
		pts := make([]r3.Vec, len(loop))
		for i, v := range loop {
			pts[i] = g.points[v]
		}
		if !o.policy.Accept(pts) {
			report.Rejected = append(report.Rejected, loop)
			continue
		}
		if _, err := m.AddFace(loop, nil); err != nil {
			// Loops through a self-loop edge repeat a vertex consecutively.
			Logger().Warn("meshtopo: rejected degenerate loop", "loop", loop, "err", err)
			report.Rejected = append(report.Rejected, loop)
		}
	}

	Logger().Debug("meshtopo: traced faces",
		"edges", len(edges),
		"vertices", m.NumVertices(),
		"loops", report.Loops,
		"faces", m.NumFaces(),
		"policy", o.policy)
	return m, report, nil
}

func newHalfedgeGraph(edges []Polyline, o options) (*halfedgeGraph, error) {
	idx, err := NewKeyIndex(o.precision)
	if err != nil {
		return nil, err
	}

	g := &halfedgeGraph{he: make([]halfedge, 0, 2*len(edges))}
	for k, e := range edges {
		if len(e) < 2 {
			return nil, fmt.Errorf("%w: edge %d has %d points", ErrInvalidInput, k, len(e))
		}
		for _, p := range e {
			if err := checkKeyable(p, o.precision); err != nil {
				return nil, fmt.Errorf("edge %d: %w", k, err)
			}
		}
		start, end := e[0], e[len(e)-1]
		tStart, okStart := endTangent(e, false)
		tEnd, okEnd := endTangent(e, true)
		if !okStart || !okEnd {
			return nil, fmt.Errorf("%w: edge %d has no extent in the XY plane", ErrInvalidInput, k)
		}

		u, _ := idx.Intern(start)
		v, _ := idx.Intern(end)
		h := len(g.he)
		g.he = append(g.he,
			halfedge{origin: u, dest: v, flip: h + 1, angle: PlanarAngle(tStart)},
			halfedge{origin: v, dest: u, flip: h, angle: PlanarAngle(tEnd)},
		)
	}
	g.points = idx.Points()

	g.fan = make([][]int, len(g.points))
	for h, e := range g.he {
		g.fan[e.origin] = append(g.fan[e.origin], h)
	}
	g.pos = make([]int, len(g.he))
	for _, fan := range g.fan {
		slices.SortStableFunc(fan, func(a, b int) int {
			switch {
			case o.less(g.he[a].angle, g.he[b].angle):
				return -1
			case o.less(g.he[b].angle, g.he[a].angle):
				return 1
			}
			return 0
		})
		for i, h := range fan {
			g.pos[h] = i
		}
	}
	return g, nil
}

// endTangent returns the direction from an end of e toward the nearest
// sample that differs from it in the XY plane.
func endTangent(e Polyline, fromEnd bool) (r3.Vec, bool) {
	n := len(e)
	for i := 1; i < n; i++ {
		var d r3.Vec
		if fromEnd {
			d = r3.Sub(e[n-1-i], e[n-1])
		} else {
			d = r3.Sub(e[i], e[0])
		}
		if !isZeroPlanar(d) {
			return d, true
		}
	}
	return r3.Vec{}, false
}

// trace walks every unvisited halfedge into a closed loop and returns the
// loops as vertex cycles in discovery order.
func (g *halfedgeGraph) trace() ([][]int, error) {
	visited := make([]bool, len(g.he))
	var loops [][]int
	for h := range g.he {
		if visited[h] {
			continue
		}
		visited[h] = true
		start := g.he[h].origin
		loop := []int{start}

		cur, closed := h, false
		for range len(g.he) {
			v := g.he[cur].dest
			if v == start {
				closed = true
				break
			}
			cur = g.turn(cur)
			loop = append(loop, v)
			visited[cur] = true
		}
		if !closed {
			return nil, fmt.Errorf("%w: loop from halfedge %d exceeds %d halfedges",
				ErrUnboundedTrace, h, len(g.he))
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// turn returns the halfedge that follows h in its loop: the one preceding
// flip(h), cyclically, around the destination of h.
func (g *halfedgeGraph) turn(h int) int {
	flip := g.he[h].flip
	fan := g.fan[g.he[flip].origin]
	return fan[(g.pos[flip]+len(fan)-1)%len(fan)]
}
