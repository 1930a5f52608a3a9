package urdf

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"
	"go.viam.com/test"

	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/referenceframe"
	"go.viam.com/robotstate/spatialmath"
)

const twoJointDescription = `<robot name="test">
  <link name="base"/>
  <joint name="joint1" type="revolute">
    <parent link="base"/>
    <child link="link1"/>
    <origin xyz="1 0 0" rpy="0 0 0"/>
    <axis xyz="0 0 1"/>
  </joint>
  <joint name="joint2" type="prismatic">
    <parent link="link1"/>
    <child link="link2"/>
    <origin xyz="0 1 0"/>
    <axis xyz="1 0 0"/>
  </joint>
</robot>`

func TestParseModelFile(t *testing.T) {
	logger := logging.NewTestLogger(t)
	m, err := ParseModelFile(filepath.Join("testdata", "ur5.urdf"), logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, m.JointNames(), test.ShouldResemble, []string{
		"world_joint",
		"shoulder_pan_joint",
		"shoulder_lift_joint",
		"elbow_joint",
		"wrist_1_joint",
		"wrist_2_joint",
		"wrist_3_joint",
		"ee_fixed_joint",
	})
	test.That(t, len(m.MovableJointNames()), test.ShouldEqual, 6)

	lift := m.Joint("shoulder_lift_joint")
	test.That(t, lift.Type(), test.ShouldEqual, referenceframe.RevoluteJoint)
	test.That(t, lift.Parent(), test.ShouldEqual, "shoulder_link")
	test.That(t, lift.Child(), test.ShouldEqual, "upper_arm_link")
	test.That(t, lift.Axis(), test.ShouldResemble, r3.Vector{X: 0, Y: 1, Z: 0})
	test.That(t, lift.Origin().Translation.Y, test.ShouldAlmostEqual, 0.13585)
	expectedRot := spatialmath.QuatFromAxisAngle(r3.Vector{X: 0, Y: 1, Z: 0}, 1.570796325)
	test.That(t, spatialmath.OrientationAlmostEqual(lift.Origin().Rotation, expectedRot), test.ShouldBeTrue)

	ee := m.Joint("ee_fixed_joint")
	test.That(t, ee.Type(), test.ShouldEqual, referenceframe.FixedJoint)
	test.That(t, ee.Axis(), test.ShouldResemble, referenceframe.DefaultAxis)

	// the transmission block reuses a joint name but has no links, so it does not replace the joint
	test.That(t, m.Joint("shoulder_pan_joint").Child(), test.ShouldEqual, "shoulder_link")
	// commented out joints are not read
	test.That(t, m.Joint("tool0_fixed_joint"), test.ShouldBeNil)

	parent, ok := m.ParentLink("base_link")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, parent, test.ShouldEqual, "world")

	_, err = ParseModelFile(filepath.Join("testdata", "missing.urdf"), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to read URDF file")
}

func TestParseJoints(t *testing.T) {
	logger := logging.NewTestLogger(t)
	joints := ParseJoints(twoJointDescription, logger)
	test.That(t, len(joints), test.ShouldEqual, 2)

	j1 := joints[0]
	test.That(t, j1.Name(), test.ShouldEqual, "joint1")
	test.That(t, j1.Type(), test.ShouldEqual, referenceframe.RevoluteJoint)
	test.That(t, j1.Parent(), test.ShouldEqual, "base")
	test.That(t, j1.Child(), test.ShouldEqual, "link1")
	test.That(t, j1.Origin(), test.ShouldResemble, spatialmath.NewTransformFromPoint(r3.Vector{X: 1, Y: 0, Z: 0}))
	test.That(t, j1.Axis(), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 1})

	j2 := joints[1]
	test.That(t, j2.Type(), test.ShouldEqual, referenceframe.PrismaticJoint)
	test.That(t, j2.Origin().Translation, test.ShouldResemble, r3.Vector{X: 0, Y: 1, Z: 0})
	test.That(t, j2.Origin().Rotation, test.ShouldResemble, spatialmath.NewZeroQuaternion())
}

func TestParseJointDefaults(t *testing.T) {
	logger := logging.NewTestLogger(t)

	t.Run("type", func(t *testing.T) {
		for _, tc := range []struct {
			tag      string
			expected referenceframe.JointType
		}{
			{`<joint name="a">`, referenceframe.FixedJoint},
			{`<joint name="a" type="floating">`, referenceframe.FixedJoint},
			{`<joint name="a" type='continuous'>`, referenceframe.ContinuousJoint},
			{`<joint type="prismatic" name="a" >`, referenceframe.PrismaticJoint},
		} {
			joints := ParseJoints(tc.tag+`<parent link="p"/><child link="c"/></joint>`, logger)
			test.That(t, len(joints), test.ShouldEqual, 1)
			test.That(t, joints[0].Name(), test.ShouldEqual, "a")
			test.That(t, joints[0].Type(), test.ShouldEqual, tc.expected)
		}
	})

	t.Run("origin and axis", func(t *testing.T) {
		joints := ParseJoints(`<joint name="a" type="revolute"><parent link="p"/><child link="c"/></joint>`, logger)
		test.That(t, len(joints), test.ShouldEqual, 1)
		test.That(t, joints[0].Origin(), test.ShouldResemble, spatialmath.NewZeroTransform())
		test.That(t, joints[0].Axis(), test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 0})
	})

	t.Run("unreadable numbers default to zero", func(t *testing.T) {
		joints := ParseJoints(`<joint name="a" type="revolute">
			<parent link="p"/><child link="c"/>
			<origin xyz="1 abc 3" rpy="x y z"/>
			<axis xyz="0 nan 4"/>
		</joint>`, logger)
		test.That(t, len(joints), test.ShouldEqual, 1)
		test.That(t, joints[0].Origin().Translation, test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 3})
		test.That(t, joints[0].Origin().Rotation, test.ShouldResemble, spatialmath.QuatFromRPY(0, 0, 0))
		test.That(t, joints[0].Axis(), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 1})
	})

	t.Run("short vectors", func(t *testing.T) {
		joints := ParseJoints(`<joint name="a"><parent link="p"/><child link="c"/><origin xyz="2"/></joint>`, logger)
		test.That(t, joints[0].Origin().Translation, test.ShouldResemble, r3.Vector{X: 2, Y: 0, Z: 0})
	})

	t.Run("axis is normalized", func(t *testing.T) {
		joints := ParseJoints(`<joint name="a" type="revolute"><parent link="p"/><child link="c"/><axis xyz="2 0 0"/></joint>`, logger)
		test.That(t, joints[0].Axis(), test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 0})

		joints = ParseJoints(`<joint name="a" type="revolute"><parent link="p"/><child link="c"/><axis xyz="0 3 4"/></joint>`, logger)
		test.That(t, joints[0].Axis().Y, test.ShouldAlmostEqual, 0.6)
		test.That(t, joints[0].Axis().Z, test.ShouldAlmostEqual, 0.8)
		test.That(t, joints[0].Axis().Norm(), test.ShouldAlmostEqual, 1.)

		// degenerate axes do not produce NaNs
		joints = ParseJoints(`<joint name="a" type="revolute"><parent link="p"/><child link="c"/><axis xyz="0 0 0"/></joint>`, logger)
		test.That(t, joints[0].Axis(), test.ShouldResemble, r3.Vector{})
	})

	t.Run("rpy", func(t *testing.T) {
		joints := ParseJoints(`<joint name="a"><parent link="p"/><child link="c"/><origin rpy="0 0 1.5707963267948966"/></joint>`, logger)
		rot := joints[0].Origin().Rotation
		test.That(t, rot.Kmag, test.ShouldAlmostEqual, math.Sqrt(0.5))
		test.That(t, rot.Real, test.ShouldAlmostEqual, math.Sqrt(0.5))
	})
}

func TestParseJointsDropped(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)

	joints := ParseJoints(`
		<joint name="no_parent" type="revolute"><child link="c"/></joint>
		<joint name="no_child" type="revolute"><parent link="p"/></joint>
		<joint name="empty_link" type="revolute"><parent link=""/><child link="c"/></joint>
		<joint name="open_close" type="revolute"><parent link="p"></parent><child link="c"/></joint>
		<joint name="self_closing"/>
		<joint name="ok" type="revolute"><parent link="p"/><child link="c"/></joint>
	`, logger)

	test.That(t, len(joints), test.ShouldEqual, 1)
	test.That(t, joints[0].Name(), test.ShouldEqual, "ok")
	test.That(t, logs.FilterMessage("skipping joint").Len(), test.ShouldEqual, 4)
	test.That(t, logs.FilterField(zap.String("joint", "no_child")).Len(), test.ShouldEqual, 1)
}

func TestNewModelFromText(t *testing.T) {
	logger := logging.NewTestLogger(t)

	m := NewModelFromText(twoJointDescription, logger)
	test.That(t, m.Len(), test.ShouldEqual, 2)
	test.That(t, len(m.JointsWithParent("base")), test.ShouldEqual, 1)

	for _, text := range []string{"", "not a robot", "<robot name='empty'></robot>", "<joint><joint>"} {
		test.That(t, NewModelFromText(text, logger).Len(), test.ShouldEqual, 0)
	}

	t.Run("later duplicates win", func(t *testing.T) {
		m := NewModelFromText(`
			<joint name="a" type="revolute"><parent link="p"/><child link="c"/></joint>
			<joint name="b" type="revolute"><parent link="c"/><child link="d"/></joint>
			<joint name="a" type="prismatic"><parent link="p"/><child link="e"/></joint>`, logger)
		test.That(t, m.JointNames(), test.ShouldResemble, []string{"a", "b"})
		test.That(t, m.Joint("a").Type(), test.ShouldEqual, referenceframe.PrismaticJoint)
		test.That(t, m.Joint("a").Child(), test.ShouldEqual, "e")
	})
}

func TestRobotName(t *testing.T) {
	test.That(t, RobotName(twoJointDescription), test.ShouldEqual, "test")
	test.That(t, RobotName(`<?xml version="1.0"?><!-- <robot name="old"> --><robot xmlns:xacro="x" name='ur5'>`), test.ShouldEqual, "ur5")
	test.That(t, RobotName("<joint/>"), test.ShouldEqual, "")
}
