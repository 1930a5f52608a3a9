package ros

// Time is a ROS timestamp: whole seconds plus the remaining nanoseconds.
type Time struct {
	Secs  int64 `json:"secs"`
	Nsecs int64 `json:"nsecs"`
}

// TimeFromNanos splits a time in nanoseconds into seconds and remainder nanoseconds.
func TimeFromNanos(nanos int64) Time {
	return Time{Secs: nanos / 1e9, Nsecs: nanos % 1e9}
}

// UnixNano returns the time in nanoseconds.
func (t Time) UnixNano() int64 {
	return t.Secs*1e9 + t.Nsecs
}

// IsZero reports whether both fields are 0.
func (t Time) IsZero() bool {
	return t.Secs == 0 && t.Nsecs == 0
}

// Header is std_msgs/Header.
type Header struct {
	Seq     uint32 `json:"seq"`
	Stamp   Time   `json:"stamp"`
	FrameID string `json:"frame_id"`
}

// JointState is sensor_msgs/JointState. Name and Position are parallel; Position may be shorter.
// Velocity and Effort are carried along but not used for kinematics.
type JointState struct {
	Header   Header    `json:"header"`
	Name     []string  `json:"name"`
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity,omitempty"`
	Effort   []float64 `json:"effort,omitempty"`
}

// Vector3 is geometry_msgs/Vector3.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is geometry_msgs/Quaternion.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Transform is geometry_msgs/Transform.
type Transform struct {
	Translation Vector3    `json:"translation"`
	Rotation    Quaternion `json:"rotation"`
}

// TransformStamped is geometry_msgs/TransformStamped. Header.FrameID names the parent frame.
type TransformStamped struct {
	Header       Header    `json:"header"`
	ChildFrameID string    `json:"child_frame_id"`
	Transform    Transform `json:"transform"`
}

// TFMessage is tf2_msgs/TFMessage.
type TFMessage struct {
	Transforms []TransformStamped `json:"transforms"`
}
