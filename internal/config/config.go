// Package config loads the YAML run descriptions of the binaries.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/logic"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

// Models understood by Train.
const (
	ModelMcCulloch  = "mcculloch"
	ModelRosenblatt = "rosenblatt"
	ModelWerbos     = "werbos"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Validator is implemented by every config type.
type Validator interface {
	Validate() error
}

// Train describes one training run of a built-in truth table.
type Train struct {
	Model        string   `yaml:"model"`
	Entries      int      `yaml:"entries"`
	Threshold    float64  `yaml:"threshold"`
	Outputs      []string `yaml:"outputs"`
	Hidden       []int    `yaml:"hidden"`
	Activation   string   `yaml:"activation"`
	Mode         string   `yaml:"mode"`
	LearningRate float64  `yaml:"learning_rate"`
	MaxEpochs    int      `yaml:"max_epochs"`
	Seed         int64    `yaml:"seed"`
	Problem      string   `yaml:"problem"`
	LogLevel     string   `yaml:"log_level"`
	DrawDir      string   `yaml:"draw_dir"`
	MetricsFile  string   `yaml:"metrics_file"`
	HistoryFile  string   `yaml:"history_file"`
}

// DefaultTrain trains a Rosenblatt perceptron on OR.
func DefaultTrain() Train {
	return Train{
		Model:        ModelRosenblatt,
		Threshold:    0.9,
		Outputs:      []string{"0", "1"},
		Hidden:       []int{2},
		Activation:   activations.Identity.String(),
		Mode:         net.ModeThreshold.String(),
		LearningRate: 0.1,
		MaxEpochs:    net.DefaultMaxEpochs,
		Problem:      "or",
		LogLevel:     zerolog.InfoLevel.String(),
	}
}

// Validate checks names, ranges and the model/mode pairing. Entries 0 means
// the arity of the problem.
func (c Train) Validate() error {
	if !logic.Known(c.Problem) {
		return errors.Wrapf(ErrInvalid, "unknown problem %q", c.Problem)
	}
	if c.Entries < 0 || (c.Entries > 0 && c.Entries != logic.Arity(c.Problem)) {
		return errors.Wrapf(ErrInvalid, "entries %d for %s", c.Entries, c.Problem)
	}
	if c.MaxEpochs < 0 {
		return errors.Wrapf(ErrInvalid, "max_epochs %d", c.MaxEpochs)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalid, "log_level: %v", err)
	}

	mode, err := net.ParseMode(c.Mode)
	if err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	switch c.Model {
	case ModelMcCulloch:
		return nil
	case ModelRosenblatt:
		if mode != net.ModeThreshold {
			return errors.Wrapf(ErrInvalid, "rosenblatt trains in %s mode, not %s", net.ModeThreshold, mode)
		}
	case ModelWerbos:
		if mode == net.ModeThreshold {
			return errors.Wrapf(ErrInvalid, "werbos needs a chain rule mode")
		}
		if len(c.Hidden) == 0 {
			return errors.Wrap(ErrInvalid, "werbos needs hidden layers")
		}
		for _, h := range c.Hidden {
			if h <= 0 {
				return errors.Wrapf(ErrInvalid, "hidden layer size %d", h)
			}
		}
		if _, err := activations.ParseKind(c.Activation); err != nil {
			return errors.Wrap(ErrInvalid, err.Error())
		}
	default:
		return errors.Wrapf(ErrInvalid, "unknown model %q", c.Model)
	}

	if len(c.Outputs) < 2 {
		return errors.Wrapf(ErrInvalid, "%s needs at least 2 outputs", c.Model)
	}
	if c.LearningRate <= 0 {
		return errors.Wrapf(ErrInvalid, "learning_rate %g", c.LearningRate)
	}
	return nil
}

// Level returns the parsed log level, info when unset.
func (c Train) Level() zerolog.Level {
	return level(c.LogLevel)
}

// Demos describes a training run on recorded demo files.
type Demos struct {
	Data         string  `yaml:"data"`
	Out          string  `yaml:"out"`
	Hidden       []int   `yaml:"hidden"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	Seed         int64   `yaml:"seed"`
	LogLevel     string  `yaml:"log_level"`
}

// DefaultDemos reads demo files from the working directory.
func DefaultDemos() Demos {
	return Demos{
		Data:         ".",
		Out:          "model.txt",
		Hidden:       []int{8},
		Epochs:       net.DefaultMaxEpochs,
		LearningRate: 0.05,
		Seed:         1,
		LogLevel:     zerolog.InfoLevel.String(),
	}
}

func (c Demos) Validate() error {
	if c.Data == "" || c.Out == "" {
		return errors.Wrap(ErrInvalid, "data and out are required")
	}
	if len(c.Hidden) == 0 {
		return errors.Wrap(ErrInvalid, "hidden layers are required")
	}
	for _, h := range c.Hidden {
		if h <= 0 {
			return errors.Wrapf(ErrInvalid, "hidden layer size %d", h)
		}
	}
	if c.Epochs <= 0 {
		return errors.Wrapf(ErrInvalid, "epochs %d", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return errors.Wrapf(ErrInvalid, "learning_rate %g", c.LearningRate)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalid, "log_level: %v", err)
	}
	return nil
}

func (c Demos) Level() zerolog.Level {
	return level(c.LogLevel)
}

func level(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return l
}

// Load decodes the YAML file at path over v, which should already hold the
// defaults, and validates the result. An empty path only validates.
func Load(path string, v Validator) error {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "could not load config %s", path)
		}
		if err := yaml.Unmarshal(b, v); err != nil {
			return errors.Wrapf(err, "could not unmarshal config %s", path)
		}
		log.Info().Str("path", path).Msg("loaded config")
	}
	return v.Validate()
}

// MustLoad is Load panicking on errors.
func MustLoad(path string, v Validator) {
	if err := Load(path, v); err != nil {
		panic(err.Error())
	}
}
