package geometry

import (
	"fmt"
	"math"
)

// Extinction selects how the point budget of an ellipse decays with the
// shrink factor r relating it to its predecessor.
type Extinction int

const (
	// ExtinctionNone keeps the point count constant.
	ExtinctionNone Extinction = iota
	// ExtinctionCubic: count·(1 − (1−r)³). Slowest decay near r≈1.
	ExtinctionCubic
	// ExtinctionQuadratic: count·(1 − (1−r)²).
	ExtinctionQuadratic
	// ExtinctionLinear: count·r.
	ExtinctionLinear
	// ExtinctionSqrt: count·(1 − √(1−r)). Fastest decay near r≈1.
	ExtinctionSqrt
)

// NumExtinctions is the number of defined policies.
const NumExtinctions = 5

func (e Extinction) String() string {
	switch e {
	case ExtinctionNone:
		return "none"
	case ExtinctionCubic:
		return "cubic"
	case ExtinctionQuadratic:
		return "quadratic"
	case ExtinctionLinear:
		return "linear"
	case ExtinctionSqrt:
		return "sqrt"
	default:
		return fmt.Sprintf("Extinction(%d)", int(e))
	}
}

// Valid reports whether e is one of the defined policies.
func (e Extinction) Valid() bool {
	return e >= ExtinctionNone && e <= ExtinctionSqrt
}

// factor returns the multiplier applied to the previous count.
func (e Extinction) factor(r float64) float64 {
	switch e {
	case ExtinctionCubic:
		return 1 - math.Pow(1-r, 3)
	case ExtinctionQuadratic:
		return 1 - (1-r)*(1-r)
	case ExtinctionLinear:
		return r
	case ExtinctionSqrt:
		// Growing ellipses have no real root; leave the count alone.
		return 1 - math.Sqrt(math.Max(0, 1-r))
	default:
		return 1
	}
}

// Apply returns the point count of the next ellipse given the previous count
// and the shrink factor r. The result is truncated towards zero and
// saturated to [0, MaxPoints].
func (e Extinction) Apply(count int, r float64) int {
	if e == ExtinctionNone {
		return count
	}
	next := math.Floor(float64(count) * e.factor(r))
	switch {
	case math.IsNaN(next) || next < 0:
		return 0
	case next > MaxPoints:
		return MaxPoints
	}
	return int(next)
}
