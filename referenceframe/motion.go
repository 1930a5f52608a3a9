package referenceframe

import (
	"github.com/golang/geo/r3"

	"go.viam.com/robotstate/spatialmath"
)

// JointMotion returns the variable part of a joint's transform for the given position. It does not
// include the joint origin.
//
//	revolute, continuous: rotation of value radians about axis
//	prismatic:            translation of value along axis
//	fixed:                identity
func JointMotion(jType JointType, axis r3.Vector, value float64) spatialmath.Transform {
	switch jType {
	case RevoluteJoint, ContinuousJoint:
		return spatialmath.NewTransformFromRotation(spatialmath.QuatFromAxisAngle(axis, value))
	case PrismaticJoint:
		return spatialmath.NewTransformFromPoint(axis.Mul(value))
	case FixedJoint:
		return spatialmath.NewZeroTransform()
	default:
		return spatialmath.NewZeroTransform()
	}
}
