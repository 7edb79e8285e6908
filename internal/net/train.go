package net

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/opt"
)

// DefaultMaxEpochs is used when TrainConfig.MaxEpochs is not set.
const DefaultMaxEpochs = 100

// Mode selects the classification policy and the backward update together.
type Mode int

const (
	// ModeThreshold classifies with Threshold and fixes with the delta rule.
	ModeThreshold Mode = iota
	// ModeChainRule classifies with MaxValue and fixes with FixChainRule.
	ModeChainRule
	// ModeSoftmax classifies with SoftmaxPolicy and fixes with
	// FixChainRuleSoftmax.
	ModeSoftmax
)

var modeNames = map[Mode]string{
	ModeThreshold: "threshold",
	ModeChainRule: "chain",
	ModeSoftmax:   "softmax",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode resolves a mode from its name.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown training mode %q", s)
}

// Policy returns the classification policy used by the mode.
func (m Mode) Policy() Policy {
	switch m {
	case ModeChainRule:
		return MaxValue
	case ModeSoftmax:
		return SoftmaxPolicy
	}
	return Threshold
}

// Loss returns the per-example loss reported by the mode: cross entropy of
// the softmax probabilities in ModeSoftmax, mean squared error of the output
// values otherwise.
func (m Mode) Loss() loss.Loss {
	if m == ModeSoftmax {
		return loss.CrossEntropy{}
	}
	return loss.MSE{}
}

// Example is one training sample: an input vector and the index of the
// output name it should select.
type Example struct {
	Inputs []float64
	Label  int
}

// TrainConfig configures a training run.
type TrainConfig struct {
	Mode         Mode
	LearningRate float64
	// MaxEpochs caps the run; DefaultMaxEpochs when zero.
	MaxEpochs int
	// Schedule, when set, overrides LearningRate. It is asked for the rate
	// of each epoch of the run, counted from 1.
	Schedule  opt.Schedule
	Callbacks []Callback
}

func (c TrainConfig) rate(epoch int) float64 {
	if c.Schedule != nil {
		return c.Schedule.Rate(epoch)
	}
	return c.LearningRate
}

// EpochStats summarises one epoch.
type EpochStats struct {
	// Epoch within the current run, from 1.
	Epoch int
	// Total is the network's cumulative epoch counter.
	Total      int
	Mismatches int
	// Undecided counts the mismatches where no output unit won.
	Undecided    int
	Loss         float64
	LearningRate float64
	Duration     time.Duration
}

// Train runs epochs over examples until one epoch classifies every example
// correctly or MaxEpochs is reached. Misclassified examples, including those
// with no winning output, are fixed immediately. outputs maps label indices
// to output unit names.
//
// Reaching MaxEpochs is not an error: Train returns false and a nil error.
func (n *Network) Train(examples []Example, outputs []string, cfg TrainConfig) (bool, error) {
	targets := make([]UnitID, len(outputs))
	for i, name := range outputs {
		id, ok := n.byName[name]
		if !ok || !n.IsOutput(id) {
			return false, errors.Wrapf(ErrUnknownOutput, "%q", name)
		}
		targets[i] = id
	}
	for i, ex := range examples {
		if ex.Label < 0 || ex.Label >= len(targets) {
			return false, errors.Wrapf(ErrLabelRange, "example %d: label %d with %d outputs", i, ex.Label, len(targets))
		}
	}
	maxEpochs := cfg.MaxEpochs
	if maxEpochs <= 0 {
		maxEpochs = DefaultMaxEpochs
	}

	logger := log.With().
		Str("network", n.Name).
		Str("run", uuid.New().String()).
		Str("mode", cfg.Mode.String()).
		Logger()
	policy := cfg.Mode.Policy()

	for _, c := range cfg.Callbacks {
		c.OnTrainBegin(n)
	}
	converged := false
	defer func() {
		for _, c := range cfg.Callbacks {
			c.OnTrainEnd(n, converged)
		}
	}()

	predicted := make([]float64, len(targets))
	var target []float64
	for epoch := 1; epoch <= maxEpochs; epoch++ {
		n.epochs++
		start := time.Now()
		lr := cfg.rate(epoch)
		for _, c := range cfg.Callbacks {
			c.OnEpochBegin(epoch, n)
		}

		stats := EpochStats{Epoch: epoch, Total: n.epochs, LearningRate: lr}
		var total float64
		for i, ex := range examples {
			if err := n.Feed(ex.Inputs); err != nil {
				return false, errors.Wrapf(err, "example %d", i)
			}
			n.step(cfg.Callbacks, StepFed)
			n.Fire()
			n.step(cfg.Callbacks, StepFired)

			winner, ok := n.Classify(policy)
			want := targets[ex.Label]
			target = loss.OneHot(target, len(targets), ex.Label)
			total += n.exampleLoss(cfg.Mode, targets, predicted, target)
			if ok && winner == want {
				continue
			}

			stats.Mismatches++
			if !ok {
				stats.Undecided++
				logger.Warn().Int("epoch", epoch).Int("example", i).Msg("no output unit won")
			} else {
				logger.Debug().
					Int("epoch", epoch).
					Int("example", i).
					Str("expected", outputs[ex.Label]).
					Str("predicted", n.units[winner].Name).
					Msg("mismatch")
			}

			if err := n.fix(cfg.Mode, want, lr); err != nil {
				return false, errors.Wrapf(err, "epoch %d example %d", epoch, i)
			}
			n.step(cfg.Callbacks, StepFixed)
		}

		if len(examples) > 0 {
			stats.Loss = total / float64(len(examples))
		}
		stats.Duration = time.Since(start)
		for _, c := range cfg.Callbacks {
			c.OnEpochEnd(stats, n)
		}

		if stats.Mismatches == 0 {
			converged = true
			logger.Info().Int("epochs", epoch).Int("total", n.epochs).Msg("converged")
			return true, nil
		}
	}

	logger.Info().Int("epochs", maxEpochs).Int("total", n.epochs).Msg("epoch cap reached without converging")
	return false, nil
}

func (n *Network) fix(mode Mode, target UnitID, lr float64) error {
	switch mode {
	case ModeThreshold:
		n.FixRosenblatt(target, lr)
		return nil
	case ModeChainRule:
		return n.FixChainRule(target, lr)
	case ModeSoftmax:
		return n.FixChainRuleSoftmax(target, lr)
	}
	return errors.Errorf("unknown training mode %d", mode)
}

// exampleLoss measures the classified outputs against the one-hot target
// with the loss of mode.
func (n *Network) exampleLoss(mode Mode, targets []UnitID, buf, target []float64) float64 {
	for i, id := range targets {
		if mode == ModeSoftmax {
			buf[i] = n.units[id].Probability
		} else {
			buf[i] = n.units[id].Value
		}
	}
	return mode.Loss().Forward(buf, target)
}

func (n *Network) step(callbacks []Callback, s Step) {
	for _, c := range callbacks {
		c.OnStep(s, n)
	}
}
