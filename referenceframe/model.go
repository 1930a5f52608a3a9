package referenceframe

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"go.viam.com/robotstate/spatialmath"
	"go.viam.com/robotstate/utils"
)

// Model is the set of joints parsed from a robot description. Joints are stored in a slice and
// addressed by index; the name, parent and child lookups are built once in NewModel. After that
// only the joint positions change.
type Model struct {
	joints        []*Joint
	byName        map[string]int
	byParent      map[string][]int
	childToParent map[string]string
}

// NewModel indexes the given joints. When two joints share a name the later one replaces the
// earlier one, keeping the earlier one's position in iteration order. Nil joints are skipped.
func NewModel(joints []*Joint) *Model {
	m := &Model{
		joints:        make([]*Joint, 0, len(joints)),
		byName:        make(map[string]int, len(joints)),
		byParent:      map[string][]int{},
		childToParent: map[string]string{},
	}
	for _, j := range joints {
		if j == nil {
			continue
		}
		if idx, ok := m.byName[j.Name()]; ok {
			m.joints[idx] = j
			continue
		}
		m.byName[j.Name()] = len(m.joints)
		m.joints = append(m.joints, j)
	}
	for idx, j := range m.joints {
		m.byParent[j.Parent()] = append(m.byParent[j.Parent()], idx)
		m.childToParent[j.Child()] = j.Parent()
	}
	return m
}

// Len returns the number of joints.
func (m *Model) Len() int {
	return len(m.joints)
}

// Joints returns the joints in iteration order.
func (m *Model) Joints() []*Joint {
	out := make([]*Joint, len(m.joints))
	copy(out, m.joints)
	return out
}

// JointAt returns the joint stored at idx.
func (m *Model) JointAt(idx int) *Joint {
	return m.joints[idx]
}

// Index returns the index of the named joint.
func (m *Model) Index(name string) (int, bool) {
	idx, ok := m.byName[name]
	return idx, ok
}

// Joint returns the named joint, or nil if there is none.
func (m *Model) Joint(name string) *Joint {
	idx, ok := m.byName[name]
	if !ok {
		return nil
	}
	return m.joints[idx]
}

// JointNames returns the joint names in iteration order.
func (m *Model) JointNames() []string {
	names := make([]string, 0, len(m.joints))
	for _, j := range m.joints {
		names = append(names, j.Name())
	}
	return names
}

// MovableJointNames returns the names of the revolute, continuous and prismatic joints in iteration order.
func (m *Model) MovableJointNames() []string {
	names := []string{}
	for _, j := range m.joints {
		if j.Type().IsMovable() {
			names = append(names, j.Name())
		}
	}
	return names
}

// JointsWithParent returns the joints whose parent is the given link.
func (m *Model) JointsWithParent(link string) []*Joint {
	idxs := m.byParent[link]
	out := make([]*Joint, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, m.joints[idx])
	}
	return out
}

// ParentLink returns the parent link of the joint whose child is the given link.
func (m *Model) ParentLink(child string) (string, bool) {
	parent, ok := m.childToParent[child]
	return parent, ok
}

// String prints out a table of each joint in the model, with its type, links, origin, axis and current value.
func (m *Model) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Type", "Parent", "Child", "Origin Translation", "Origin Orientation", "Axis", "Value"})
	for i, j := range m.joints {
		tra := j.Origin().Translation
		ori := spatialmath.QuatToEulerAngles(j.Origin().Rotation)
		axis := j.Axis()
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i),
			j.Name(),
			string(j.Type()),
			j.Parent(),
			j.Child(),
			fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", tra.X, tra.Y, tra.Z),
			fmt.Sprintf(
				"Roll:%.2f, Pitch:%.2f, Yaw:%.2f",
				utils.RadToDeg(ori.Roll),
				utils.RadToDeg(ori.Pitch),
				utils.RadToDeg(ori.Yaw),
			),
			fmt.Sprintf("%.3f %.3f %.3f", axis.X, axis.Y, axis.Z),
			fmt.Sprintf("%.4f", j.Value()),
		})
	}
	return t.Render()
}
