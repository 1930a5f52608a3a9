// Package referenceframe defines the joints of a robot description and the motion each joint
// type contributes, and groups parsed joints into a Model.
package referenceframe

import (
	"github.com/golang/geo/r3"

	"go.viam.com/robotstate/spatialmath"
)

// JointType is the kind of motion a joint allows.
type JointType string

// The joint types understood by the model. Anything else is treated as FixedJoint.
const (
	RevoluteJoint   JointType = "revolute"
	ContinuousJoint JointType = "continuous"
	PrismaticJoint  JointType = "prismatic"
	FixedJoint      JointType = "fixed"
)

// ParseJointType maps a type attribute onto a JointType. Missing or unrecognized types become FixedJoint.
func ParseJointType(s string) JointType {
	switch jt := JointType(s); jt {
	case RevoluteJoint, ContinuousJoint, PrismaticJoint, FixedJoint:
		return jt
	default:
		return FixedJoint
	}
}

// IsMovable reports whether the joint type has a variable component.
func (jt JointType) IsMovable() bool {
	return jt == RevoluteJoint || jt == ContinuousJoint || jt == PrismaticJoint
}

// DefaultAxis is the axis used when a joint does not declare one.
var DefaultAxis = r3.Vector{X: 1, Y: 0, Z: 0}

// Joint connects a parent link to a child link. Everything but the joint position is fixed at
// construction.
type Joint struct {
	name   string
	jType  JointType
	parent string
	child  string
	origin spatialmath.Transform
	axis   r3.Vector

	value float64
}

// NewJoint creates a joint. The axis is normalized, with a zero axis left as zero.
func NewJoint(name string, jType JointType, parent, child string, origin spatialmath.Transform, axis r3.Vector) *Joint {
	return &Joint{
		name:   name,
		jType:  ParseJointType(string(jType)),
		parent: parent,
		child:  child,
		origin: origin,
		axis:   spatialmath.Normalize(axis),
	}
}

// Name returns the unique name of the joint.
func (j *Joint) Name() string {
	return j.name
}

// Type returns the joint type.
func (j *Joint) Type() JointType {
	return j.jType
}

// Parent returns the parent link name.
func (j *Joint) Parent() string {
	return j.parent
}

// Child returns the child link name.
func (j *Joint) Child() string {
	return j.child
}

// Origin returns the fixed transform from the parent link frame to the joint frame.
func (j *Joint) Origin() spatialmath.Transform {
	return j.origin
}

// Axis returns the unit motion axis.
func (j *Joint) Axis() r3.Vector {
	return j.axis
}

// Value returns the current joint position: radians for rotational joints, length units for prismatic ones.
func (j *Joint) Value() float64 {
	return j.value
}

// SetValue sets the current joint position. Fixed joints store it but never use it.
func (j *Joint) SetValue(value float64) {
	j.value = value
}

// Transform returns the pose of the child link in the parent link frame at the current joint position.
func (j *Joint) Transform() spatialmath.Transform {
	return spatialmath.Compose(j.origin, JointMotion(j.jType, j.axis, j.value))
}
