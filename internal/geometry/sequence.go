// Package geometry computes the nested ellipses of an ellipse stack.
//
// Ellipse i is derived from ellipse i-1 by a single recurrence: both semi-axes
// are scaled by the shrink factor
//
//	r = sqrt(1 + δ²/4) − δ/2,  δ = (a/b − b/a)·sin(dt)
//
// and the point budget decays according to an [Extinction] policy. The axis
// ratio a/b is therefore the same for every ellipse of a stack.
package geometry

import "math"

// MaxPoints bounds the point budget of any single ellipse.
const MaxPoints = 5000

// Ellipse is the derived state of one member of the stack.
type Ellipse struct {
	// Index is the position in the stack, 0 being the first ellipse.
	Index int
	// A and B are the semi-axes along the unrotated X and Y directions.
	A, B float64
	// Count is the number of points scattered along the boundary.
	Count int
	// Angle is the orientation in degrees.
	Angle float64
}

// ShrinkFactor returns r for stepping an ellipse with semi-axes (a, b) by
// dtDeg degrees. Both a and b must be non-zero.
func ShrinkFactor(a, b, dtDeg float64) float64 {
	delta := (a/b - b/a) * math.Sin(Radians(dtDeg))
	return math.Sqrt(1+delta*delta/4) - delta/2
}

// Advance derives the next ellipse of the stack from prev.
func Advance(prev Ellipse, dtDeg float64, policy Extinction) Ellipse {
	r := ShrinkFactor(prev.A, prev.B, dtDeg)
	return Ellipse{
		Index: prev.Index + 1,
		A:     prev.A * r,
		B:     prev.B * r,
		Count: policy.Apply(prev.Count, r),
		Angle: prev.Angle + dtDeg,
	}
}

// Sequence returns the n ellipses of a stack whose first member has
// semi-axes (a0, b0) and np0 points. It returns nil if n < 1.
func Sequence(a0, b0 float64, np0, n int, dtDeg float64, policy Extinction) []Ellipse {
	if n < 1 {
		return nil
	}
	out := make([]Ellipse, n)
	out[0] = Ellipse{A: a0, B: b0, Count: np0}
	for i := 1; i < n; i++ {
		out[i] = Advance(out[i-1], dtDeg, policy)
	}
	// Angles are i·dt exactly rather than accumulated sums.
	for i := range out {
		out[i].Angle = float64(i) * dtDeg
	}
	return out
}
