package meshtopo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pt is a convenience function to create a coordinate.
func Pt(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// PlanarAngle returns the direction of v projected on the XY plane,
// measured counter-clockwise from the positive X axis, in (-π, π].
func PlanarAngle(v r3.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// SignedArea returns the signed area of the closed polygon through points,
// projected on the XY plane. Counter-clockwise polygons are positive.
func SignedArea(points []r3.Vec) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		p, q := points[i], points[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// isFinite reports whether every component of v is a finite number.
func isFinite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// isZeroPlanar reports whether v has no extent in the XY plane.
func isZeroPlanar(v r3.Vec) bool {
	return v.X == 0 && v.Y == 0
}
