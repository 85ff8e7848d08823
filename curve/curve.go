// Package curve turns analytical curves and Bezier segments into polylines
// that can be fed to meshtopo.TraceFaces and meshtopo.PolylinesToMesh.
package curve

import (
	"fmt"
	"math"

	"github.com/gogpu/meshtopo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Func evaluates a parametric curve at t.
type Func func(t float64) r3.Vec

// Circle returns the circle of radius r centred on the origin in the XY plane.
func Circle(r float64) Func {
	return func(t float64) r3.Vec {
		return r3.Vec{X: r * math.Cos(t), Y: r * math.Sin(t)}
	}
}

// Ellipse returns the axis-aligned ellipse with semi-axes a along X and b
// along Y.
func Ellipse(a, b float64) Func {
	return func(t float64) r3.Vec {
		return r3.Vec{X: a * math.Cos(t), Y: b * math.Sin(t)}
	}
}

// ArchimedeanSpiral returns the spiral r = b*t turned by the angle a.
// Successive turns are 2πb apart.
func ArchimedeanSpiral(a, b float64) Func {
	return func(t float64) r3.Vec {
		return r3.Vec{X: b * t * math.Cos(t+a), Y: b * t * math.Sin(t+a)}
	}
}

// LogarithmicSpiral returns the spiral r = a*exp(b*t).
func LogarithmicSpiral(a, b float64) Func {
	return func(t float64) r3.Vec {
		r := a * math.Exp(b*t)
		return r3.Vec{X: r * math.Cos(t), Y: r * math.Sin(t)}
	}
}

// Helix returns the helix of radius a rising by b per radian along Z.
func Helix(a, b float64) Func {
	return func(t float64) r3.Vec {
		return r3.Vec{X: a * math.Cos(t), Y: a * math.Sin(t), Z: b * t}
	}
}

// Sample evaluates f at n+1 evenly spaced parameters from t0 to t1.
func Sample(f Func, t0, t1 float64, n int) (meshtopo.Polyline, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil curve", meshtopo.ErrInvalidInput)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %d segments", meshtopo.ErrInvalidInput, n)
	}
	out := make(meshtopo.Polyline, n+1)
	for i := range out {
		out[i] = f(t0 + (t1-t0)*float64(i)/float64(n))
	}
	return out, nil
}

// Length returns the length of the polyline through points.
func Length(points []r3.Vec) float64 {
	var l float64
	for i := 1; i < len(points); i++ {
		l += r3.Norm(r3.Sub(points[i], points[i-1]))
	}
	return l
}

// IsClosed reports whether a polyline ends on its first point.
func IsClosed(points []r3.Vec) bool {
	return len(points) > 2 && points[0] == points[len(points)-1]
}
