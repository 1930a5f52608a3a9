// Package cli contains the robotstate command line tool.
package cli

import (
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"go.viam.com/robotstate/ros"
)

// Flags.
const (
	flagDebug       = "debug"
	flagDescription = "description"
	flagFramePrefix = "frame-prefix"
	flagTimeout     = "timeout"
	flagPosition    = "position"
	flagTime        = "time"
	flagFormat      = "format"
	flagBag         = "bag"
	flagTopic       = "topic"
	flagConfig      = "config"

	formatTable  = "table"
	formatJSON   = "json"
	formatMatrix = "matrix"
)

var descriptionFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     flagDescription,
		Aliases:  []string{"d"},
		Required: true,
		Usage:    "robot description to load: http(s) URL, file:// URL or path",
	},
	&cli.StringFlag{
		Name:  flagFramePrefix,
		Usage: "prefix prepended to every link name as `PREFIX/link`",
	},
	&cli.DurationFlag{
		Name:  flagTimeout,
		Value: 10 * time.Second,
		Usage: "how long to wait for the description to download",
	},
}

var app = &cli.App{
	Name:            "robotstate",
	Usage:           "compute the transforms between the links of a robot from its joint states",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "transforms",
			Usage:     "print the transform of every joint at the given positions",
			UsageText: "robotstate transforms --description <robot.urdf> [--position joint=value ...] [other options]",
			Flags: append([]cli.Flag{
				&cli.StringSliceFlag{
					Name:    flagPosition,
					Aliases: []string{"p"},
					Usage:   "joint position as `NAME=VALUE` (radians or meters, or degrees with a deg suffix), may be repeated",
				},
				&cli.Int64Flag{
					Name:  flagTime,
					Usage: "publish time in nanoseconds to stamp the transforms with",
				},
				&cli.StringFlag{
					Name:  flagFormat,
					Value: formatTable,
					Usage: "output format: table, json or matrix",
				},
			}, descriptionFlags...),
			Action: TransformsAction,
		},
		{
			Name:      "model",
			Usage:     "print the joints parsed from a description",
			UsageText: "robotstate model --description <robot.urdf>",
			Flags:     descriptionFlags,
			Action:    ModelAction,
		},
		{
			Name:      "replay",
			Usage:     "compute transforms for every joint state recorded in a rosbag",
			UsageText: "robotstate replay --description <robot.urdf> --bag <recording.bag> [--topic joint_states]",
			Flags: append([]cli.Flag{
				&cli.PathFlag{
					Name:      flagBag,
					Required:  true,
					TakesFile: true,
					Usage:     "rosbag to read joint states from",
				},
				&cli.StringFlag{
					Name:  flagTopic,
					Value: ros.DefaultJointStatesTopic,
					Usage: "topic the joint states were recorded on",
				},
			}, descriptionFlags...),
			Action: ReplayAction,
		},
		{
			Name:  "publish",
			Usage: "read joint states from stdin and publish transforms to stdout at a fixed rate",
			Description: `Each line of input is a sensor_msgs/JointState as JSON, either bare or wrapped
the way rosbag JSON exports are ({"meta": {...}, "data": {...}}). Wrapped messages
whose meta.topic differs from the configured joint_states_topic are skipped.`,
			UsageText: "robotstate publish --config <robotstate.json>",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:      flagConfig,
					Aliases:   []string{"c"},
					Required:  true,
					TakesFile: true,
					Usage:     "load configuration from `FILE`",
				},
			},
			Action: PublishAction,
		},
		{
			Name:   "config-schema",
			Usage:  "print the JSON schema of the publish configuration",
			Action: ConfigSchemaAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Reader set to in, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(in io.Reader, out, errOut io.Writer) *cli.App {
	app.Reader = in
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
