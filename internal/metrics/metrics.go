// Package metrics exposes training progress as prometheus metrics.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

const namespace = "perceptron"

// Training is a training callback that counts epochs, mismatches, undecided
// examples and backward updates per network.
type Training struct {
	net.BaseCallback

	Epochs     *prometheus.CounterVec
	Mismatches *prometheus.CounterVec
	Undecided  *prometheus.CounterVec
	Updates    *prometheus.CounterVec
	Converged  *prometheus.GaugeVec
	Loss       *prometheus.GaugeVec

	strategy string
}

// NewTraining creates the metrics of training runs in mode and registers
// them on reg.
func NewTraining(reg prometheus.Registerer, mode net.Mode) (*Training, error) {
	t := &Training{
		Epochs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "epochs_total",
			Help:      "Training epochs run.",
		}, []string{"network"}),
		Mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mismatches_total",
			Help:      "Examples classified wrongly or not at all.",
		}, []string{"network"}),
		Undecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undecided_total",
			Help:      "Examples for which no output unit won.",
		}, []string{"network"}),
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Backward updates applied.",
		}, []string{"network", "strategy"}),
		Converged: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "converged",
			Help:      "1 when the last training run converged.",
		}, []string{"network"}),
		Loss: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_epoch_loss",
			Help:      "Mean loss of the last epoch.",
		}, []string{"network"}),
		strategy: mode.String(),
	}

	for _, c := range []prometheus.Collector{t.Epochs, t.Mismatches, t.Undecided, t.Updates, t.Converged, t.Loss} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register training metrics")
		}
	}
	return t, nil
}

func (t *Training) OnTrainBegin(n *net.Network) {
	t.Converged.WithLabelValues(n.Name).Set(0)
}

func (t *Training) OnEpochEnd(stats net.EpochStats, n *net.Network) {
	t.Epochs.WithLabelValues(n.Name).Inc()
	t.Mismatches.WithLabelValues(n.Name).Add(float64(stats.Mismatches))
	t.Undecided.WithLabelValues(n.Name).Add(float64(stats.Undecided))
	t.Loss.WithLabelValues(n.Name).Set(stats.Loss)
}

func (t *Training) OnStep(step net.Step, n *net.Network) {
	if step == net.StepFixed {
		t.Updates.WithLabelValues(n.Name, t.strategy).Inc()
	}
}

func (t *Training) OnTrainEnd(n *net.Network, converged bool) {
	if converged {
		t.Converged.WithLabelValues(n.Name).Set(1)
	}
}

// WriteTextfile writes every metric of g to path in the text exposition
// format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return errors.Wrap(prometheus.WriteToTextfile(path, g), "write metrics")
}
