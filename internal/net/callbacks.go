package net

import (
	"github.com/rs/zerolog/log"
)

// Step identifies a point of the training loop at which the network state
// can be observed.
type Step int

const (
	// StepFed follows feeding an example.
	StepFed Step = iota
	// StepFired follows forward propagation.
	StepFired
	// StepFixed follows a backward update.
	StepFixed
)

func (s Step) String() string {
	switch s {
	case StepFed:
		return "fed"
	case StepFired:
		return "fired"
	case StepFixed:
		return "fixed"
	}
	return "unknown"
}

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network, converged bool)
	OnEpochBegin(epoch int, n *Network)
	OnEpochEnd(stats EpochStats, n *Network)
	OnStep(step Step, n *Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)                 {}
func (c BaseCallback) OnTrainEnd(n *Network, converged bool)   {}
func (c BaseCallback) OnEpochBegin(epoch int, n *Network)      {}
func (c BaseCallback) OnEpochEnd(stats EpochStats, n *Network) {}
func (c BaseCallback) OnStep(step Step, n *Network)            {}

// Logger logs training progress.
type Logger struct {
	BaseCallback
	Interval int
}

func (c Logger) OnEpochEnd(stats EpochStats, n *Network) {
	if c.Interval > 0 && stats.Epoch%c.Interval == 0 {
		log.Info().
			Str("network", n.Name).
			Int("epoch", stats.Epoch).
			Int("mismatches", stats.Mismatches).
			Int("undecided", stats.Undecided).
			Float64("loss", stats.Loss).
			Float64("lr", stats.LearningRate).
			Msg("epoch")
	}
}

func (c Logger) OnTrainEnd(n *Network, converged bool) {
	log.Info().Str("network", n.Name).Int("epochs", n.Epochs()).Bool("converged", converged).Msg("training finished")
}

// History records the statistics of every epoch.
type History struct {
	BaseCallback
	Epochs []EpochStats
}

func (h *History) OnEpochEnd(stats EpochStats, n *Network) {
	h.Epochs = append(h.Epochs, stats)
}

// Mismatches returns the number of mismatches of each recorded epoch.
func (h *History) Mismatches() []float64 {
	out := make([]float64, len(h.Epochs))
	for i, s := range h.Epochs {
		out[i] = float64(s.Mismatches)
	}
	return out
}

// Losses returns the loss of each recorded epoch.
func (h *History) Losses() []float64 {
	out := make([]float64, len(h.Epochs))
	for i, s := range h.Epochs {
		out[i] = s.Loss
	}
	return out
}
