package export

import (
	"github.com/rs/zerolog/log"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

// Checkpoint is a training callback that saves the network as a model file
// whenever an epoch ends with fewer mismatches than any epoch before.
type Checkpoint struct {
	net.BaseCallback
	Path    string
	Means   []float64
	Stds    []float64
	Options []Option

	best  int
	seen  bool
	saved int
}

// NewCheckpoint creates a Checkpoint writing to path.
func NewCheckpoint(path string, means, stds []float64, opts ...Option) *Checkpoint {
	return &Checkpoint{Path: path, Means: means, Stds: stds, Options: opts}
}

func (c *Checkpoint) OnEpochEnd(stats net.EpochStats, n *net.Network) {
	if c.seen && stats.Mismatches >= c.best {
		return
	}
	c.best, c.seen = stats.Mismatches, true

	m, err := FromNetwork(n, c.Means, c.Stds, c.Options...)
	if err == nil {
		err = m.Save(c.Path)
	}
	if err != nil {
		log.Error().Err(err).Str("file", c.Path).Msg("checkpoint")
		return
	}
	c.saved++
	log.Debug().Str("file", c.Path).Int("epoch", stats.Total).Int("mismatches", stats.Mismatches).Msg("checkpoint saved")
}

// Saved returns the number of models written.
func (c *Checkpoint) Saved() int { return c.saved }
