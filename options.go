package meshtopo

import "runtime"

// Option configures a tracing, welding or batch operation.
// Use functional options to override the defaults.
//
// Example:
//
//	// Default: 3 decimal digits, triangles and quads only
//	m, report, err := meshtopo.TraceFaces(edges)
//
//	// Coarser welding, keep every counter-clockwise loop
//	m, report, err := meshtopo.TraceFaces(edges,
//	    meshtopo.WithPrecision(2),
//	    meshtopo.WithFacePolicy(meshtopo.PolicyPositiveArea))
type Option func(*options)

// options holds the settings shared by all operations. Each operation reads
// only the fields that concern it.
type options struct {
	precision int
	policy    FacePolicy
	less      AngleLess
	workers   int

	// policySet records whether WithFacePolicy was given, so operations
	// with a different default policy can honour an explicit choice.
	policySet bool
}

// defaultOptions returns the default operation options.
func defaultOptions() options {
	return options{
		precision: DefaultPrecision,
		policy:    PolicyTriQuad,
		less:      AscendingAngle,
		workers:   runtime.GOMAXPROCS(0),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithPrecision sets the number of decimal digits used by geometric keys.
// Valid values are 0 to MaxPrecision; operations reject anything else with
// ErrInvalidInput.
func WithPrecision(digits int) Option {
	return func(o *options) {
		o.precision = digits
	}
}

// WithFacePolicy selects which traced loops become faces.
func WithFacePolicy(p FacePolicy) Option {
	return func(o *options) {
		o.policy = p
		o.policySet = true
	}
}

// WithAngleLess replaces the comparator that orders outgoing halfedges
// around a vertex. Halfedges the comparator considers equal keep their
// input order. A nil comparator restores AscendingAngle.
func WithAngleLess(less AngleLess) Option {
	return func(o *options) {
		if less == nil {
			less = AscendingAngle
		}
		o.less = less
	}
}

// WithWorkers sets the number of workers used by Batch.
// Zero or negative values use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}
