package cli

import (
	"bufio"
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/robotstate/config"
	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/publisher"
	"go.viam.com/robotstate/ros"
)

// PublishAction is the corresponding Action for 'publish'.
func PublishAction(c *cli.Context) error {
	cfg, err := config.Read(c.Path(flagConfig), newLogger(c))
	if err != nil {
		return err
	}
	if c.Bool(flagDebug) {
		cfg.Debug = true
	}
	logger := cfg.NewLogger("robotstate", c.App.ErrWriter)
	defer goutils.UncheckedErrorFunc(logger.Sync)

	engine, err := loadEngine(c.Context, cfg.Description, cfg.FramePrefix, cfg.FetchTimeout, logger)
	if err != nil {
		return err
	}
	if len(cfg.InitialPositions) > 0 {
		engine.SetValues(initialJointState(cfg.InitialPositions))
	}

	pub, err := publisher.New(engine, ros.NewJSONLinesSink(c.App.Writer), publisher.Options{
		Rate:   cfg.PublishFrequencyHz,
		Logger: logger.Sublogger("publisher"),
	})
	if err != nil {
		return err
	}
	logger.Infow("publishing transforms", "joints", engine.Model().Len(), "rate_hz", cfg.PublishFrequencyHz)

	readErr := readJointStates(c.App.Reader, cfg.JointStatesTopic, logger, pub.UpdateJointState)
	// the last state read is always published, however short the input was
	publishErr := pub.PublishOnce(c.Context)
	return multierr.Combine(readErr, publishErr, pub.Close())
}

func initialJointState(positions map[string]float64) ros.JointState {
	js := ros.JointState{}
	for name := range positions {
		js.Name = append(js.Name, name)
	}
	sort.Strings(js.Name)
	for _, name := range js.Name {
		js.Position = append(js.Position, positions[name])
	}
	return js
}

// readJointStates calls update with every joint state read from r until r is exhausted.
// Unreadable lines are logged and skipped.
func readJointStates(r io.Reader, topic string, logger logging.Logger, update func(ros.JointState)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		js, ok, err := decodeJointStateLine([]byte(text), topic)
		if err != nil {
			logger.Warnw("skipping unreadable joint state", "line", line, "error", err)
			continue
		}
		if !ok {
			continue
		}
		update(js)
	}
	return errors.Wrap(scanner.Err(), "failed to read joint states")
}

// decodeJointStateLine decodes one line of input. ok is false when the line is a wrapped message
// recorded on another topic.
func decodeJointStateLine(line []byte, topic string) (ros.JointState, bool, error) {
	var msg map[string]interface{}
	if err := json.Unmarshal(line, &msg); err != nil {
		return ros.JointState{}, false, err
	}
	if msg == nil {
		return ros.JointState{}, false, errors.New("not a JSON object")
	}
	if _, wrapped := msg["data"]; !wrapped {
		msg = map[string]interface{}{"data": msg}
	} else if meta, ok := msg["meta"].(map[string]interface{}); ok {
		if recorded, ok := meta["topic"].(string); ok && !sameTopic(recorded, topic) {
			return ros.JointState{}, false, nil
		}
	}
	js, err := ros.DecodeJointState(msg)
	if err != nil {
		return ros.JointState{}, false, err
	}
	return js, true, nil
}

func sameTopic(a, b string) bool {
	return strings.TrimPrefix(a, "/") == strings.TrimPrefix(b, "/")
}
