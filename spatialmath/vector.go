package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Normalize returns v scaled to unit length. A zero-length vector is divided by 1 instead, so it
// comes back unchanged rather than producing NaNs.
func Normalize(v r3.Vector) r3.Vector {
	length := v.Norm()
	if length == 0 {
		length = 1
	}
	return v.Mul(1 / length)
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}
