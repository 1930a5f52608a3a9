// Package config defines the configuration of a robotstate publisher and how it is read.
package config

import (
	"io"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/ros"
)

// Defaults applied to fields left unset.
const (
	DefaultPublishFrequencyHz = 50.
	DefaultFetchTimeout       = 10 * time.Second
)

// A Config describes which robot to load and how to publish its transforms.
type Config struct {
	// Description is an http(s) URL, a file:// URL or a path to the robot description.
	Description        string             `json:"description"`
	PublishFrequencyHz float64            `json:"publish_frequency_hz,omitempty"`
	FetchTimeout       time.Duration      `json:"fetch_timeout,omitempty"`
	JointStatesTopic   string             `json:"joint_states_topic,omitempty"`
	FramePrefix        string             `json:"frame_prefix,omitempty"`
	LogFile            string             `json:"log_file,omitempty"`
	Debug              bool               `json:"debug,omitempty"`
	InitialPositions   map[string]float64 `json:"initial_positions,omitempty"`

	ConfigFilePath string `json:"-"`
}

// ApplyDefaults fills in every unset optional field.
func (c *Config) ApplyDefaults() {
	if c.PublishFrequencyHz == 0 {
		c.PublishFrequencyHz = DefaultPublishFrequencyHz
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.JointStatesTopic == "" {
		c.JointStatesTopic = ros.DefaultJointStatesTopic
	}
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	if c.Description == "" {
		return goutils.NewConfigValidationFieldRequiredError(path, "description")
	}
	if c.PublishFrequencyHz <= 0 {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("publish_frequency_hz must be positive, got %v", c.PublishFrequencyHz))
	}
	if c.FetchTimeout < 0 {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("fetch_timeout cannot be negative, got %v", c.FetchTimeout))
	}
	return nil
}

// NewLogger returns the logger the config asks for: debug or info level, written to w and also
// to LogFile when one is set.
func (c *Config) NewLogger(name string, w io.Writer) logging.Logger {
	level := logging.INFO
	if c.Debug {
		level = logging.DEBUG
	}
	if c.LogFile != "" {
		return logging.NewFileWriterLogger(name, c.LogFile, level, w)
	}
	return logging.NewWriterLogger(name, w, level)
}

// Schema returns the JSON schema of a config file.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
