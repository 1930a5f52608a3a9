package spatialmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Transform is a rigid body transform: a rotation followed by a translation. It maps points in a
// local frame into its reference frame.
type Transform struct {
	Rotation    quat.Number
	Translation r3.Vector
}

// NewZeroTransform returns the identity transform.
func NewZeroTransform() Transform {
	return Transform{Rotation: NewZeroQuaternion()}
}

// NewTransform creates a transform from a rotation and a translation.
func NewTransform(rotation quat.Number, translation r3.Vector) Transform {
	return Transform{Rotation: rotation, Translation: translation}
}

// NewTransformFromPoint creates a pure translation.
func NewTransformFromPoint(point r3.Vector) Transform {
	return Transform{Rotation: NewZeroQuaternion(), Translation: point}
}

// NewTransformFromRotation creates a pure rotation.
func NewTransformFromRotation(rotation quat.Number) Transform {
	return Transform{Rotation: rotation}
}

// Compose returns the transform that applies b first and then a.
// The operand order matters for every chain longer than one frame and must not be swapped.
func Compose(a, b Transform) Transform {
	return Transform{
		Rotation:    QuatMul(a.Rotation, b.Rotation),
		Translation: a.Translation.Add(RotatePoint(b.Translation, a.Rotation)),
	}
}

// Apply maps a point from the local frame of t into its reference frame.
func (t Transform) Apply(p r3.Vector) r3.Vector {
	return t.Translation.Add(RotatePoint(p, t.Rotation))
}

// Matrix returns the homogeneous 4x4 matrix of the transform.
func (t Transform) Matrix() mgl64.Mat4 {
	q := mgl64.Quat{
		W: t.Rotation.Real,
		V: mgl64.Vec3{t.Rotation.Imag, t.Rotation.Jmag, t.Rotation.Kmag},
	}
	return mgl64.Translate3D(t.Translation.X, t.Translation.Y, t.Translation.Z).Mul4(q.Normalize().Mat4())
}

// String prints the transform as a translation and a quaternion.
func (t Transform) String() string {
	return fmt.Sprintf(
		"{X:%.6f Y:%.6f Z:%.6f | QX:%.6f QY:%.6f QZ:%.6f QW:%.6f}",
		t.Translation.X, t.Translation.Y, t.Translation.Z,
		t.Rotation.Imag, t.Rotation.Jmag, t.Rotation.Kmag, t.Rotation.Real,
	)
}

// TransformAlmostEqual reports whether two transforms have approximately the same translation and rotation.
func TransformAlmostEqual(a, b Transform) bool {
	return R3VectorAlmostEqual(a.Translation, b.Translation, 1e-8) && OrientationAlmostEqual(a.Rotation, b.Rotation)
}
