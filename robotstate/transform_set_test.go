package robotstate

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/ros"
)

func TestTransformSet(t *testing.T) {
	e := NewEngineFromText(twoJoints, logging.NewTestLogger(t))
	records := e.ComputeFromValues(
		ros.JointState{Name: []string{"joint1", "joint2"}, Position: []float64{math.Pi / 2, 0.5}},
		WithPublishTime(2_000_000_001),
	)

	msg := TransformSet(records)
	test.That(t, len(msg.Transforms), test.ShouldEqual, 3)

	first := msg.Transforms[0]
	test.That(t, first.Header.FrameID, test.ShouldEqual, "base")
	test.That(t, first.ChildFrameID, test.ShouldEqual, "link1")
	test.That(t, first.Header.Stamp, test.ShouldResemble, ros.Time{Secs: 2, Nsecs: 1})
	test.That(t, first.Transform.Translation, test.ShouldResemble, ros.Vector3{X: 1})
	test.That(t, first.Transform.Rotation.X, test.ShouldAlmostEqual, 0.)
	test.That(t, first.Transform.Rotation.Z, test.ShouldAlmostEqual, math.Sqrt(0.5))
	test.That(t, first.Transform.Rotation.W, test.ShouldAlmostEqual, math.Sqrt(0.5))

	test.That(t, msg.Transforms[1].Transform.Translation.X, test.ShouldAlmostEqual, 0.5)
	test.That(t, msg.Transforms[1].Transform.Rotation, test.ShouldResemble, ros.Quaternion{W: 1})

	test.That(t, TransformSet(nil).Transforms, test.ShouldBeEmpty)
}
