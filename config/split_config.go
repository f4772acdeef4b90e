// Package config defines how dataset splits are configured from files and attribute maps.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.viam.com/splitters/logging"
	"go.viam.com/splitters/ml/splitters"
)

// AttributeMap is a loosely typed configuration, such as command line overrides.
type AttributeMap map[string]interface{}

// SplitConfig describes how to split a dataset. All fractions left at zero select the default
// 80/10/10 split.
type SplitConfig struct {
	FracTrain float64 `json:"frac_train"`
	FracValid float64 `json:"frac_valid"`
	FracTest  float64 `json:"frac_test"`
	// Seed is optional; without it every split is different.
	Seed     *int64         `json:"seed,omitempty"`
	LogLevel *logging.Level `json:"log_level,omitempty"`
}

// Fractions returns the configured fractions, or the defaults when none are set.
func (conf *SplitConfig) Fractions() splitters.Fractions {
	if conf.FracTrain == 0 && conf.FracValid == 0 && conf.FracTest == 0 {
		return splitters.DefaultFractions()
	}
	return splitters.Fractions{Train: conf.FracTrain, Valid: conf.FracValid, Test: conf.FracTest}
}

// Options returns the splitter options the config asks for.
func (conf *SplitConfig) Options() []splitters.Option {
	if conf.Seed == nil {
		return nil
	}
	return []splitters.Option{splitters.WithSeed(*conf.Seed)}
}

// Validate ensures all parts of the config are valid.
func (conf *SplitConfig) Validate(path string) error {
	if err := conf.Fractions().Validate(); err != nil {
		return goutils.NewConfigValidationError(path, err)
	}
	return nil
}

// levelHook decodes log level names such as "debug" into a logging.Level.
func levelHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(logging.Level(0)) {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	return logging.LevelFromString(s)
}

// Apply decodes attributes on top of conf. Settings missing from attributes keep their current
// values and unknown attributes are an error.
func (conf *SplitConfig) Apply(attributes AttributeMap) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      conf,
		ErrorUnused: true,
		DecodeHook:  levelHook,
	})
	if err != nil {
		return err
	}
	return errors.Wrap(decoder.Decode(attributes), "failed to decode split config")
}

// DecodeSplitConfig converts attributes into a SplitConfig. Unknown attributes are an error.
func DecodeSplitConfig(attributes AttributeMap) (*SplitConfig, error) {
	var conf SplitConfig
	if err := conf.Apply(attributes); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Read reads a split config from the given file, expanding environment variables first.
func Read(filePath string) (*SplitConfig, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a split config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader) (*SplitConfig, error) {
	var conf SplitConfig
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&conf); err != nil {
		return nil, errors.Wrapf(err, "failed to decode split config from json")
	}

	if err := conf.Validate(originalPath); err != nil {
		return nil, err
	}
	return &conf, nil
}
