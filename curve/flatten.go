package curve

import (
	"math"

	"github.com/gogpu/meshtopo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tolerance is the default maximum distance between a Bezier segment and
// its flattened polyline.
const Tolerance = 0.1

// maxDepth bounds the subdivision; 2^16 segments per curve.
const maxDepth = 16

// QuadBezier flattens the quadratic Bezier curve p0, p1, p2 into a polyline
// starting at p0. A non-positive tolerance selects Tolerance.
func QuadBezier(p0, p1, p2 r3.Vec, tolerance float64) meshtopo.Polyline {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	points := meshtopo.Polyline{p0}
	flattenQuadratic(p0, p1, p2, tolerance, 0, &points)
	return points
}

// CubicBezier flattens the cubic Bezier curve p0..p3 into a polyline
// starting at p0. A non-positive tolerance selects Tolerance.
func CubicBezier(p0, p1, p2, p3 r3.Vec, tolerance float64) meshtopo.Polyline {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	points := meshtopo.Polyline{p0}
	flattenCubic(p0, p1, p2, p3, tolerance, 0, &points)
	return points
}

func flattenQuadratic(p0, p1, p2 r3.Vec, tolerance float64, depth int, points *meshtopo.Polyline) {
	if depth >= maxDepth || distanceToSegment(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}

	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(q0, q1, 0.5)

	flattenQuadratic(p0, q0, q2, tolerance, depth+1, points)
	flattenQuadratic(q2, q1, p2, tolerance, depth+1, points)
}

func flattenCubic(p0, p1, p2, p3 r3.Vec, tolerance float64, depth int, points *meshtopo.Polyline) {
	dist := math.Max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3))
	if depth >= maxDepth || dist < tolerance {
		*points = append(*points, p3)
		return
	}

	// de Casteljau split at t = 0.5.
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(p2, p3, 0.5)
	r0 := lerp(q0, q1, 0.5)
	r1 := lerp(q1, q2, 0.5)
	s := lerp(r0, r1, 0.5)

	flattenCubic(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubic(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToSegment returns the distance from p to the segment a-b.
func distanceToSegment(p, a, b r3.Vec) float64 {
	ab := r3.Sub(b, a)
	l2 := r3.Dot(ab, ab)
	if l2 < 1e-20 {
		return r3.Norm(r3.Sub(p, a))
	}
	t := r3.Dot(r3.Sub(p, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return r3.Norm(r3.Sub(p, r3.Add(a, r3.Scale(t, ab))))
}
