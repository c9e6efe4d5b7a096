package scene

import (
	"math"
	"math/rand/v2"

	"honnef.co/go/curve"

	"github.com/iburimskiy/ellipse-stack/internal/geometry"
)

// NewRand returns a generator seeded with seed. Renders that must be
// reproducible, such as tests, use a fixed seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sample scatters e.Count points in a band of relative thickness eps around
// the boundary of the axis-aligned ellipse with semi-axes e.A and e.B.
func Sample(rng *rand.Rand, e geometry.Ellipse, eps float64) []curve.Point {
	if e.Count <= 0 {
		return nil
	}
	pts := make([]curve.Point, e.Count)
	for i := range pts {
		p := 1 + rng.Float64()*eps - eps/2
		sin, cos := math.Sincos(rng.Float64() * 2 * math.Pi)
		pts[i] = curve.Pt(p*e.A*cos, p*e.B*sin)
	}
	return pts
}
