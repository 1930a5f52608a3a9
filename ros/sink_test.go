package ros

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestJSONLinesSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONLinesSink(&buf)

	msg := &TFMessage{Transforms: []TransformStamped{{
		Header:       Header{Stamp: Time{Secs: 1, Nsecs: 2}, FrameID: "base"},
		ChildFrameID: "link1",
		Transform: Transform{
			Translation: Vector3{X: 1},
			Rotation:    Quaternion{W: 1},
		},
	}}}
	test.That(t, sink.Publish(context.Background(), msg), test.ShouldBeNil)
	test.That(t, sink.Publish(context.Background(), &TFMessage{}), test.ShouldBeNil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	test.That(t, len(lines), test.ShouldEqual, 2)
	test.That(t, lines[0], test.ShouldContainSubstring, `"child_frame_id":"link1"`)
	test.That(t, lines[0], test.ShouldContainSubstring, `"frame_id":"base"`)

	var decoded TFMessage
	test.That(t, json.Unmarshal([]byte(lines[0]), &decoded), test.ShouldBeNil)
	test.That(t, &decoded, test.ShouldResemble, msg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.That(t, sink.Publish(ctx, msg), test.ShouldBeError, context.Canceled)
}
