package meshtopo

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// FacePolicy decides which closed halfedge loops found by the face tracer
// are kept as faces.
//
// The tracer has no dedicated outer-face detection. The default
// PolicyTriQuad relies on loop length alone: it drops every face with five
// or more sides, and keeps the unbounded outer loop whenever the outline of
// the input is itself a triangle or a quad. PolicyPositiveArea is the
// stricter alternative and must be opted into.
type FacePolicy int

const (
	// PolicyTriQuad keeps loops of exactly 3 or 4 vertices (default).
	PolicyTriQuad FacePolicy = iota

	// PolicyPositiveArea keeps loops of 3 or more vertices whose signed
	// area in the XY plane is strictly positive. Interior faces are traced
	// counter-clockwise and the outer loop clockwise, so this drops the
	// outer loop.
	PolicyPositiveArea

	// PolicyAll keeps every loop of 3 or more vertices, outer loop included.
	PolicyAll
)

// String returns the policy name.
func (p FacePolicy) String() string {
	switch p {
	case PolicyTriQuad:
		return "TriQuad"
	case PolicyPositiveArea:
		return "PositiveArea"
	case PolicyAll:
		return "All"
	default:
		return "Unknown"
	}
}

// ParseFacePolicy parses a policy name as produced by String. Matching is
// case-insensitive.
func ParseFacePolicy(s string) (FacePolicy, error) {
	for _, p := range []FacePolicy{PolicyTriQuad, PolicyPositiveArea, PolicyAll} {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown face policy %q", ErrInvalidInput, s)
}

// Accept reports whether a loop with the given vertex coordinates becomes a face.
func (p FacePolicy) Accept(loop []r3.Vec) bool {
	switch p {
	case PolicyTriQuad:
		return len(loop) == 3 || len(loop) == 4
	case PolicyPositiveArea:
		return len(loop) >= 3 && SignedArea(loop) > 0
	case PolicyAll:
		return len(loop) >= 3
	default:
		return false
	}
}
