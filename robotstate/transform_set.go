package robotstate

import (
	"go.viam.com/robotstate/ros"
)

// TransformSet converts records into a TFMessage, preserving their order.
func TransformSet(records []TransformRecord) *ros.TFMessage {
	msg := &ros.TFMessage{Transforms: make([]ros.TransformStamped, 0, len(records))}
	for _, rec := range records {
		t, r := rec.Transform.Translation, rec.Transform.Rotation
		msg.Transforms = append(msg.Transforms, ros.TransformStamped{
			Header:       ros.Header{Stamp: rec.Stamp, FrameID: rec.Parent},
			ChildFrameID: rec.Child,
			Transform: ros.Transform{
				Translation: ros.Vector3{X: t.X, Y: t.Y, Z: t.Z},
				Rotation:    ros.Quaternion{X: r.Imag, Y: r.Jmag, Z: r.Kmag, W: r.Real},
			},
		})
	}
	return msg
}
