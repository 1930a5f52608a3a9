// Package urdf reads the joints out of *.urdf robot descriptions.
//
// The reader scans the text for <joint> blocks and reads the handful of attributes a joint needs
// instead of decoding the whole document, so a description with unrelated markup errors, unknown
// elements or broken joints still yields every joint that can be read. A joint without a
// self-closing <parent link=".."/> and <child link=".."/> is skipped.
package urdf

import (
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/referenceframe"
	"go.viam.com/robotstate/spatialmath"
)

// Extension is the file extension associated with URDF files.
const Extension string = "urdf"

var (
	commentRe    = regexp.MustCompile(`(?s)<!--.*?-->`)
	jointBlockRe = regexp.MustCompile(`(?s)<joint((?:\s+[^>]*[^/>])?)\s*>(.*?)</joint\s*>`)
	robotTagRe   = regexp.MustCompile(`<robot((?:\s+[^>]*)?)>`)

	// only the self-closing form of parent and child is recognized
	parentRe = regexp.MustCompile(`<parent(\s[^>]*?)/\s*>`)
	childRe  = regexp.MustCompile(`<child(\s[^>]*?)/\s*>`)
	originRe = regexp.MustCompile(`<origin(\s[^>]*?)?/?\s*>`)
	axisRe   = regexp.MustCompile(`<axis(\s[^>]*?)?/?\s*>`)

	attrRes = map[string]*regexp.Regexp{}
)

func init() {
	for _, name := range []string{"name", "type", "link", "xyz", "rpy"} {
		attrRes[name] = regexp.MustCompile(`(?:^|\s)` + name + `\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	}
}

// attribute returns the value of the named attribute within the attribute text of a tag.
func attribute(attrs, name string) (string, bool) {
	m := attrRes[name].FindStringSubmatch(attrs)
	if m == nil {
		return "", false
	}
	// only one of the two quote groups can match
	return m[1] + m[2], true
}

// elementAttribute finds the first element matched by re in body and returns the named attribute.
func elementAttribute(re *regexp.Regexp, body, name string) (string, bool) {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return attribute(m[1], name)
}

// spaceDelimitedStringToVector splits up space-delimited fields such as xyz or rpy attributes.
// Missing or unreadable components are 0.
func spaceDelimitedStringToVector(s string) r3.Vector {
	var parsed [3]float64
	for i, field := range strings.Fields(s) {
		if i >= len(parsed) {
			break
		}
		value, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			value = 0
		}
		parsed[i] = value
	}
	return r3.Vector{X: parsed[0], Y: parsed[1], Z: parsed[2]}
}

// parseOrigin reads the optional origin element into the fixed parent-to-joint transform.
func parseOrigin(body string) spatialmath.Transform {
	m := originRe.FindStringSubmatch(body)
	if m == nil {
		return spatialmath.NewZeroTransform()
	}
	origin := spatialmath.NewZeroTransform()
	if xyz, ok := attribute(m[1], "xyz"); ok {
		origin.Translation = spaceDelimitedStringToVector(xyz)
	}
	if rpy, ok := attribute(m[1], "rpy"); ok {
		ea := spaceDelimitedStringToVector(rpy)
		origin.Rotation = spatialmath.QuatFromRPY(ea.X, ea.Y, ea.Z)
	}
	return origin
}

// parseAxis reads the optional axis element. The result is always normalized.
func parseAxis(body string) r3.Vector {
	xyz, ok := elementAttribute(axisRe, body, "xyz")
	if !ok {
		return referenceframe.DefaultAxis
	}
	return spatialmath.Normalize(spaceDelimitedStringToVector(xyz))
}

// parseJointBlock builds a joint out of the attributes of its opening tag and the text between the
// opening and closing tags. When the joint cannot be built the reason is returned instead.
func parseJointBlock(attrs, body string) (*referenceframe.Joint, string) {
	name, _ := attribute(attrs, "name")
	jType, _ := attribute(attrs, "type")

	parent, ok := elementAttribute(parentRe, body, "link")
	if !ok || parent == "" {
		return nil, "missing parent link"
	}
	child, ok := elementAttribute(childRe, body, "link")
	if !ok || child == "" {
		return nil, "missing child link"
	}

	return referenceframe.NewJoint(
		name,
		referenceframe.ParseJointType(jType),
		parent,
		child,
		parseOrigin(body),
		parseAxis(body),
	), ""
}

// ParseJoints returns every joint that can be read from the description, in order of appearance.
// Joint blocks that cannot be read are skipped and logged at debug level.
func ParseJoints(text string, logger logging.Logger) []*referenceframe.Joint {
	text = commentRe.ReplaceAllString(text, "")

	joints := []*referenceframe.Joint{}
	for _, block := range jointBlockRe.FindAllStringSubmatch(text, -1) {
		joint, reason := parseJointBlock(block[1], block[2])
		if joint == nil {
			name, _ := attribute(block[1], "name")
			logger.Debugw("skipping joint", "joint", name, "reason", reason)
			continue
		}
		joints = append(joints, joint)
	}
	return joints
}

// NewModelFromText parses a description into a Model. A description without any readable joints
// produces an empty Model.
func NewModelFromText(text string, logger logging.Logger) *referenceframe.Model {
	model := referenceframe.NewModel(ParseJoints(text, logger))
	logger.Debugw("parsed robot description", "robot", RobotName(text), "joints", model.Len())
	return model
}

// RobotName returns the name attribute of the <robot> element, or "" if there is none.
func RobotName(text string) string {
	m := robotTagRe.FindStringSubmatch(commentRe.ReplaceAllString(text, ""))
	if m == nil {
		return ""
	}
	name, _ := attribute(m[1], "name")
	return name
}

// ParseModelFile will read a given file and parse the contained description into a Model.
func ParseModelFile(filename string, logger logging.Logger) (*referenceframe.Model, error) {
	//nolint:gosec
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return NewModelFromText(string(data), logger), nil
}
