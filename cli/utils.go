package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/ros"
	"go.viam.com/robotstate/utils"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// newLogger returns a logger writing to the app's error output so stdout only carries results.
func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(flagDebug) {
		return logging.NewWriterLogger("robotstate", c.App.ErrWriter, logging.DEBUG)
	}
	return logging.NewWriterLogger("robotstate", c.App.ErrWriter, logging.WARN)
}

// parsePositions turns NAME=VALUE pairs into a joint state, keeping their order. A value ending in
// "deg" is converted from degrees.
func parsePositions(pairs []string) (ros.JointState, error) {
	js := ros.JointState{Name: []string{}, Position: []float64{}}
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return js, errors.Errorf("position %q must look like NAME=VALUE", pair)
		}
		raw = strings.TrimSpace(raw)
		degrees := strings.HasSuffix(raw, "deg")
		value, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "deg")), 64)
		if err != nil {
			return js, errors.Wrapf(err, "invalid value for joint %q", name)
		}
		if degrees {
			value = utils.DegToRad(value)
		}
		js.Name = append(js.Name, name)
		js.Position = append(js.Position, value)
	}
	return js, nil
}
