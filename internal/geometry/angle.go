package geometry

import (
	"math"

	"honnef.co/go/curve"
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rotation returns the transform turning the plane about the origin by deg
// degrees, anti-clockwise in the Y-up space the stack is described in.
func Rotation(deg float64) curve.Affine {
	return curve.Rotate(Radians(deg))
}
