package meshtopo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultPrecision is the number of decimal digits kept by geometric keys
// when no precision option is given.
const DefaultPrecision = 3

// MaxPrecision is the largest supported precision.
const MaxPrecision = 12

// GeometricKey identifies a coordinate rounded to a decimal precision.
// Two coordinates weld together iff their keys are equal.
//
// Each component holds the bit pattern of the scaled, rounded coordinate.
// Scaled values beyond 2^53 are already integers in float64, so large
// coordinates keep distinct keys instead of overflowing an integer.
type GeometricKey struct {
	X, Y, Z uint64
}

// Key returns the geometric key of p at the given precision. Each component
// is scaled by 10^precision and rounded half away from zero, so -0.0001 and
// 0.0001 share a key at precision 3.
//
// Key is total, but only points accepted by Keyable have meaningful keys:
// all non-finite values of one component share a key.
func Key(p r3.Vec, precision int) GeometricKey {
	scale := math.Pow10(precision)
	return GeometricKey{
		X: keyBits(p.X, scale),
		Y: keyBits(p.Y, scale),
		Z: keyBits(p.Z, scale),
	}
}

func keyBits(c, scale float64) uint64 {
	r := math.Round(c * scale)
	switch {
	case r == 0:
		r = 0 // fold -0 into +0
	case math.IsNaN(r):
		r = math.NaN()
	}
	return math.Float64bits(r)
}

// Keyable reports whether p has a geometric key at the given precision:
// every component must be finite, and stay finite once scaled.
func Keyable(p r3.Vec, precision int) bool {
	return isFinite(r3.Scale(math.Pow10(precision), p))
}

func checkKeyable(p r3.Vec, precision int) error {
	if !Keyable(p, precision) {
		return fmt.Errorf("%w: point %v has no geometric key at precision %d", ErrInvalidInput, p, precision)
	}
	return nil
}

// String formats the key the way the rounded coordinate would print.
func (k GeometricKey) String() string {
	return fmt.Sprintf("%.0f,%.0f,%.0f",
		math.Float64frombits(k.X), math.Float64frombits(k.Y), math.Float64frombits(k.Z))
}

func checkPrecision(precision int) error {
	if precision < 0 || precision > MaxPrecision {
		return fmt.Errorf("%w: precision %d outside [0, %d]", ErrInvalidInput, precision, MaxPrecision)
	}
	return nil
}

// KeyIndex interns coordinates into dense vertex ids by geometric key.
//
// A KeyIndex accumulates state and must be created per weld operation.
// It is not safe for concurrent use.
type KeyIndex struct {
	precision int
	ids       map[GeometricKey]int
	points    []r3.Vec
}

// NewKeyIndex creates an empty index at the given precision.
func NewKeyIndex(precision int) (*KeyIndex, error) {
	if err := checkPrecision(precision); err != nil {
		return nil, err
	}
	return &KeyIndex{
		precision: precision,
		ids:       make(map[GeometricKey]int),
	}, nil
}

// Intern returns the id of p. If no coordinate with the same key was seen,
// a new id is allocated and p is stored as its representative coordinate.
func (idx *KeyIndex) Intern(p r3.Vec) (id int, added bool) {
	k := Key(p, idx.precision)
	if id, ok := idx.ids[k]; ok {
		return id, false
	}
	id = len(idx.points)
	idx.ids[k] = id
	idx.points = append(idx.points, p)
	return id, true
}

// Lookup returns the id of p without allocating one.
func (idx *KeyIndex) Lookup(p r3.Vec) (int, bool) {
	id, ok := idx.ids[Key(p, idx.precision)]
	return id, ok
}

// Len returns the number of distinct keys interned so far.
func (idx *KeyIndex) Len() int { return len(idx.points) }

// Precision returns the decimal precision of the index.
func (idx *KeyIndex) Precision() int { return idx.precision }

// Points returns the representative coordinate of every id, indexed by id.
// The first coordinate interned for a key is its representative.
func (idx *KeyIndex) Points() []r3.Vec {
	out := make([]r3.Vec, len(idx.points))
	copy(out, idx.points)
	return out
}
