package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/ros"
)

const twoJoints = `<robot name="two">
  <joint name="joint1" type="revolute">
    <parent link="base"/>
    <child link="link1"/>
    <origin xyz="1 0 0" rpy="0 0 0"/>
    <axis xyz="0 0 1"/>
  </joint>
  <joint name="joint2" type="prismatic">
    <parent link="link1"/>
    <child link="link2"/>
    <origin xyz="0 1 0" rpy="0 0 0"/>
    <axis xyz="1 0 0"/>
  </joint>
  <joint name="tool" type="fixed">
    <parent link="link2"/>
    <child link="tool0"/>
  </joint>
</robot>`

func writeDescription(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "two.urdf")
	test.That(t, os.WriteFile(path, []byte(twoJoints), 0o600), test.ShouldBeNil)
	return path
}

func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(strings.NewReader(stdin), &out, &errOut).Run(append([]string{"robotstate"}, args...))
	return out.String(), errOut.String(), err
}

func TestParsePositions(t *testing.T) {
	js, err := parsePositions([]string{"joint1=1.5", " joint2 = -0.25 "})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, js.Name, test.ShouldResemble, []string{"joint1", "joint2"})
	test.That(t, js.Position, test.ShouldResemble, []float64{1.5, -0.25})

	js, err = parsePositions([]string{"joint1=90deg", "joint2=-45 deg"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, js.Position[0], test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, js.Position[1], test.ShouldAlmostEqual, -math.Pi/4)

	js, err = parsePositions(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, js.Name, test.ShouldBeEmpty)

	_, err = parsePositions([]string{"joint1"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "NAME=VALUE")

	_, err = parsePositions([]string{"=1"})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = parsePositions([]string{"joint1=fast"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "joint1")
}

func TestTransformsAction(t *testing.T) {
	path := writeDescription(t)

	out, _, err := runApp(t, "", "transforms", "--description", path,
		"-p", "joint1=1.5707963267948966", "-p", "joint2=0.5", "--time", "3000000007", "--format", "json")
	test.That(t, err, test.ShouldBeNil)

	var msg ros.TFMessage
	test.That(t, json.Unmarshal([]byte(out), &msg), test.ShouldBeNil)
	test.That(t, len(msg.Transforms), test.ShouldEqual, 3)
	link1 := msg.Transforms[0]
	test.That(t, link1.Header.FrameID, test.ShouldEqual, "base")
	test.That(t, link1.ChildFrameID, test.ShouldEqual, "link1")
	test.That(t, link1.Header.Stamp, test.ShouldResemble, ros.Time{Secs: 3, Nsecs: 7})
	test.That(t, link1.Transform.Rotation.Z, test.ShouldAlmostEqual, math.Sqrt(0.5))
	test.That(t, msg.Transforms[1].Transform.Translation.X, test.ShouldAlmostEqual, 0.5)
	test.That(t, msg.Transforms[1].Transform.Translation.Y, test.ShouldAlmostEqual, 1.)

	out, _, err = runApp(t, "", "transforms", "--description", path, "--frame-prefix", "left")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "left/link1")
	test.That(t, out, test.ShouldContainSubstring, "1.000000")

	out, _, err = runApp(t, "", "transforms", "--description", path, "--format", "matrix")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "base -> link1")
	test.That(t, out, test.ShouldContainSubstring, "link2 -> tool0")

	_, _, err = runApp(t, "", "transforms", "--description", path, "--format", "yaml")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "yaml")

	_, _, err = runApp(t, "", "transforms", "--description", filepath.Join(t.TempDir(), "missing.urdf"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "retrieval failed")
}

func TestModelAction(t *testing.T) {
	out, _, err := runApp(t, "", "model", "--description", writeDescription(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "joint2")
	test.That(t, out, test.ShouldContainSubstring, "prismatic")
	test.That(t, out, test.ShouldContainSubstring, "3 joints, 2 movable")
}

func TestReplayActionMissingBag(t *testing.T) {
	_, _, err := runApp(t, "", "replay", "--description", writeDescription(t), "--bag", filepath.Join(t.TempDir(), "missing.bag"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unable to open input file")
}

func TestPublishAction(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "robotstate.json")
	test.That(t, os.WriteFile(cfgPath, []byte(`{
		"description": "`+writeDescription(t)+`",
		"frame_prefix": "arm",
		"initial_positions": {"joint2": 0.25}
	}`), 0o600), test.ShouldBeNil)

	stdin := strings.Join([]string{
		`{"name": ["joint1"], "position": [1.5707963267948966]}`,
		`not json`,
		`{"meta": {"topic": "/other", "secs": 1, "nsecs": 0}, "data": {"name": ["joint1"], "position": [3]}}`,
		`{"meta": {"topic": "/joint_states", "secs": 1, "nsecs": 0}, "data": {"name": ["joint2"], "position": [0.5]}}`,
		``,
	}, "\n")

	out, errOut, err := runApp(t, stdin, "publish", "--config", cfgPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "skipping unreadable joint state")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	test.That(t, len(lines), test.ShouldBeGreaterThanOrEqualTo, 1)
	var last ros.TFMessage
	test.That(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last), test.ShouldBeNil)
	test.That(t, len(last.Transforms), test.ShouldEqual, 3)
	test.That(t, last.Transforms[0].Header.FrameID, test.ShouldEqual, "arm/base")
	test.That(t, last.Transforms[0].Transform.Rotation.Z, test.ShouldAlmostEqual, math.Sqrt(0.5))
	test.That(t, last.Transforms[1].Transform.Translation.X, test.ShouldAlmostEqual, 0.5)
	test.That(t, last.Transforms[0].Header.Stamp.IsZero(), test.ShouldBeFalse)

	_, _, err = runApp(t, "", "publish", "--config", filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDecodeJointStateLine(t *testing.T) {
	js, ok, err := decodeJointStateLine([]byte(`{"name": ["a", "b"], "position": [1, 2]}`), "joint_states")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, js.Name, test.ShouldResemble, []string{"a", "b"})

	_, ok, err = decodeJointStateLine([]byte(`{"meta": {"topic": "/tf"}, "data": {"name": ["a"]}}`), "joint_states")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)

	js, ok, err = decodeJointStateLine([]byte(`{"meta": {"secs": 4, "nsecs": 5}, "data": {"name": ["a"], "position": [1]}}`), "joint_states")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, js.Header.Stamp, test.ShouldResemble, ros.Time{Secs: 4, Nsecs: 5})

	for _, bad := range []string{`null`, `[1]`, `{"position": "fast"}`} {
		_, _, err = decodeJointStateLine([]byte(bad), "joint_states")
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestReadJointStates(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	var got []ros.JointState
	err := readJointStates(strings.NewReader("{\"name\": [\"a\"]}\n\n{bad\n{\"name\": [\"b\"]}"), "joint_states", logger,
		func(js ros.JointState) { got = append(got, js) })
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(got), test.ShouldEqual, 2)
	test.That(t, got[1].Name, test.ShouldResemble, []string{"b"})
	test.That(t, logs.FilterMessage("skipping unreadable joint state").Len(), test.ShouldEqual, 1)
}

func TestConfigSchemaAction(t *testing.T) {
	out, _, err := runApp(t, "", "config-schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "frame_prefix")
}
