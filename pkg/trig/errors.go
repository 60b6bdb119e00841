package trig

import "errors"

var (
	// ErrUnderspecified indicates fewer than three independent measurements,
	// or no side at all (angles alone fix a triangle only up to scale).
	ErrUnderspecified = errors.New("trig: underspecified shape")
	// ErrDegenerate indicates a triangle-inequality violation or zero area.
	ErrDegenerate = errors.New("trig: degenerate triangle")
	// ErrAmbiguous indicates an SSA input with two valid triangles under the Reject policy.
	ErrAmbiguous = errors.New("trig: ambiguous triangle")
	// ErrOverdetermined indicates more measurements than needed that disagree with each other.
	ErrOverdetermined = errors.New("trig: measurements disagree")
	// ErrInvalidMeasure indicates a negative, non-finite or out-of-range value.
	ErrInvalidMeasure = errors.New("trig: invalid measurement")
)
