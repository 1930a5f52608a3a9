package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/robotstate/robotstate"
	"go.viam.com/robotstate/ros"
)

// ReplayAction is the corresponding Action for 'replay'. It writes one line of TFMessage JSON
// per recorded joint state, stamped with the time the state was recorded.
func ReplayAction(c *cli.Context) error {
	logger := newLogger(c)
	engine, err := loadEngineFromFlags(c, logger)
	if err != nil {
		return err
	}

	bag, err := ros.ReadBag(c.Path(flagBag))
	if err != nil {
		return err
	}
	states, err := ros.JointStatesFromBag(bag, c.String(flagTopic))
	if err != nil {
		return errors.Wrapf(err, "cannot read joint states from %q", c.Path(flagBag))
	}
	logger.Debugw("replaying joint states", "count", len(states), "topic", c.String(flagTopic))

	return replayJointStates(c, engine, states)
}

func replayJointStates(c *cli.Context, engine *robotstate.Engine, states []ros.JointState) error {
	sink := ros.NewJSONLinesSink(c.App.Writer)
	for _, js := range states {
		records := engine.ComputeFromValues(js, robotstate.WithPublishTime(js.Header.Stamp.UnixNano()))
		if err := sink.Publish(c.Context, robotstate.TransformSet(records)); err != nil {
			return err
		}
	}
	return nil
}
