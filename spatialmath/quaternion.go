// Package spatialmath defines the vector, quaternion and rigid transform math used to turn joint
// positions into frame transforms.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// NewZeroQuaternion returns the identity rotation.
func NewZeroQuaternion() quat.Number {
	return quat.Number{Real: 1}
}

// QuatFromAxisAngle returns the rotation of angle radians about axis. The axis does not need to be
// normalized.
func QuatFromAxisAngle(axis r3.Vector, angle float64) quat.Number {
	return NewR4AAFromAxis(axis, angle).ToQuat()
}

// QuatFromRPY returns the fixed-axis roll, pitch, yaw rotation Rz(yaw) * Ry(pitch) * Rx(roll).
func QuatFromRPY(roll, pitch, yaw float64) quat.Number {
	return (&EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}).Quaternion()
}

// QuatMul returns the Hamilton product a*b, which applies b's rotation first and then a's.
func QuatMul(a, b quat.Number) quat.Number {
	return quat.Mul(a, b)
}

// RotatePoint rotates v by the unit quaternion q.
// Uses v' = v + w*t + u x t where t = 2 * (u x v) and u is the vector part of q.
func RotatePoint(v r3.Vector, q quat.Number) r3.Vector {
	u := r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.Real)).Add(u.Cross(t))
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Quaternions have double coverage, q == -q, and
// this function will *not* account for this. Use OrientationAlmostEqual unless you're certain this is what you want.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) < tol &&
		math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol &&
		math.Abs(a.Kmag-b.Kmag) < tol
}

// OrientationAlmostEqual reports whether two quaternions describe approximately the same rotation,
// accounting for q and -q being equivalent.
func OrientationAlmostEqual(a, b quat.Number) bool {
	return QuaternionAlmostEqual(a, b, 1e-5) || QuaternionAlmostEqual(a, Flip(b), 1e-5)
}
