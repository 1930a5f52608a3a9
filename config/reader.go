package config

import (
	"bytes"
	"io"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/robotstate/logging"
)

// Read reads a config from the given file. ${VAR} references are replaced with environment
// variables before the file is parsed.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %q", filePath)
	}

	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
// Comments and trailing commas are allowed.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}

	var attrs map[string]interface{}
	if err := json5.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Wrap(err, "failed to decode Config from json")
	}
	if attrs == nil {
		return nil, errors.New("failed to decode Config from json: not an object")
	}

	cfg := Config{ConfigFilePath: originalPath}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, errors.Wrap(err, "failed to decode Config")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	logger.Debugw("read config", "path", originalPath, "description", cfg.Description,
		"publish_frequency_hz", cfg.PublishFrequencyHz, "fetch_timeout", cfg.FetchTimeout.String())
	return &cfg, nil
}
