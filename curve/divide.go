package curve

import (
	"fmt"
	"math"

	"github.com/gogpu/meshtopo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Divide resamples the polyline through points into floor(L/spacing)+1
// segments of equal length, where L is its length. The result always has
// the original end points. A closed input stays closed: its last point is
// exactly its first.
func Divide(points []r3.Vec, spacing float64) (meshtopo.Polyline, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: polyline has %d points", meshtopo.ErrInvalidInput, len(points))
	}
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return nil, fmt.Errorf("%w: spacing %v", meshtopo.ErrInvalidInput, spacing)
	}
	total := Length(points)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: polyline length %v", meshtopo.ErrInvalidInput, total)
	}

	n := int(total/spacing) + 1
	step := total / float64(n)

	out := make(meshtopo.Polyline, 0, n+1)
	out = append(out, points[0])

	seg, walked := 1, 0.0 // walked is the length up to points[seg-1]
	for k := 1; k < n; k++ {
		target := step * float64(k)
		for seg < len(points)-1 {
			l := r3.Norm(r3.Sub(points[seg], points[seg-1]))
			if walked+l >= target {
				break
			}
			walked += l
			seg++
		}
		a, b := points[seg-1], points[seg]
		l := r3.Norm(r3.Sub(b, a))
		t := 0.0
		if l > 0 {
			t = min((target-walked)/l, 1)
		}
		out = append(out, lerp(a, b, t))
	}
	out = append(out, points[len(points)-1])
	return out, nil
}

// DivideFunc samples f densely between t0 and t1 and divides the result
// at the given spacing.
func DivideFunc(f Func, t0, t1 float64, samples int, spacing float64) (meshtopo.Polyline, error) {
	dense, err := Sample(f, t0, t1, samples)
	if err != nil {
		return nil, err
	}
	if r3.Norm(r3.Sub(dense[0], dense[len(dense)-1])) < 1e-12 {
		dense[len(dense)-1] = dense[0]
	}
	return Divide(dense, spacing)
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
