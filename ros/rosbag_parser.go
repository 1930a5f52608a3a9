// Package ros implements the ROS message shapes robotstate reads and writes, and reading joint
// states out of rosbags.
package ros

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/edaniels/gobag/rosbag"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// DefaultJointStatesTopic is the topic joint states are published on by convention.
const DefaultJointStatesTopic = "joint_states"

// ReadBag reads the contents of a rosbag into a gobag data structure.
func ReadBag(filename string) (*rosbag.RosBag, error) {
	//nolint:gosec
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open input file")
	}
	defer utils.UncheckedErrorFunc(f.Close)

	rb := rosbag.NewRosBag()

	if err := rb.Read(f); err != nil {
		return nil, errors.Wrapf(err, "unable to create ros bag, error")
	}

	return rb, nil
}

// topicKey is the key gobag files a topic's messages under: no leading slash, lowercase, and
// remaining slashes replaced by underscores.
func topicKey(topic string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(topic, "/"), "/", "_"))
}

// lineReader is satisfied by the buffers gobag collects JSON lines in.
type lineReader interface {
	ReadBytes(delim byte) ([]byte, error)
}

// AllMessagesForTopic returns all messages for a specific topic in the ros bag.
func AllMessagesForTopic(rb *rosbag.RosBag, topic string) ([]map[string]interface{}, error) {
	key := topicKey(topic)
	if err := rb.ParseTopicsToJSON(
		"",
		func(int64) bool { return true },
		func(t string) bool { return topicKey(t) == key },
		false,
	); err != nil {
		return nil, errors.Wrapf(err, "error while parsing bag to JSON")
	}

	msgs := rb.TopicsAsJSON[key]
	if msgs == nil {
		return nil, errors.Errorf("no messages for topic %s", topic)
	}
	return readMessages(msgs)
}

func readMessages(msgs lineReader) ([]map[string]interface{}, error) {
	all := []map[string]interface{}{}

	for {
		data, err := msgs.ReadBytes('\n')
		if len(strings.TrimSpace(string(data))) > 0 {
			message := map[string]interface{}{}
			if err := json.Unmarshal(data, &message); err != nil {
				return nil, err
			}
			all = append(all, message)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}

	return all, nil
}

func decode(input, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// DecodeJointState converts one bag message, a map holding the record time under "meta" and the
// message under "data", into a JointState. A message whose header carries no stamp is given the
// record time instead.
func DecodeJointState(message map[string]interface{}) (JointState, error) {
	var js JointState
	data, ok := message["data"]
	if !ok {
		return js, errors.New("message has no data")
	}
	if err := decode(data, &js); err != nil {
		return js, errors.Wrap(err, "cannot decode joint state")
	}
	if js.Header.Stamp.IsZero() {
		if meta, ok := message["meta"]; ok {
			var recorded Time
			if err := decode(meta, &recorded); err != nil {
				return js, errors.Wrap(err, "cannot decode record time")
			}
			js.Header.Stamp = recorded
		}
	}
	return js, nil
}

// JointStatesFromBag returns every joint state recorded on topic, in bag order.
func JointStatesFromBag(rb *rosbag.RosBag, topic string) ([]JointState, error) {
	msgs, err := AllMessagesForTopic(rb, topic)
	if err != nil {
		return nil, err
	}
	return decodeJointStates(msgs)
}

func decodeJointStates(msgs []map[string]interface{}) ([]JointState, error) {
	states := make([]JointState, 0, len(msgs))
	for i, msg := range msgs {
		js, err := DecodeJointState(msg)
		if err != nil {
			return nil, errors.Wrapf(err, "message %d", i)
		}
		states = append(states, js)
	}
	return states, nil
}
