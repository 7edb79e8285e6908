package perceptron

import (
	"math/rand"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/export"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/logic"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/opt"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/topology"
)

// Re-export common types and functions for easier access
type (
	Network     = net.Network
	Example     = net.Example
	TrainConfig = net.TrainConfig
	EpochStats  = net.EpochStats
	Callback    = net.Callback
	History     = net.History
	Mode        = net.Mode
	Policy      = net.Policy
	Activation  = activations.Kind
	Initializer = topology.Initializer
	Option      = topology.Option
	Model       = export.Model
	Schedule    = opt.Schedule
)

// Training modes
const (
	ModeThreshold = net.ModeThreshold
	ModeChainRule = net.ModeChainRule
	ModeSoftmax   = net.ModeSoftmax
)

// Classification policies
const (
	Threshold = net.Threshold
	MaxValue  = net.MaxValue
	Softmax   = net.SoftmaxPolicy
)

// Activations
const (
	Identity = activations.Identity
	Step     = activations.Step
	Sign     = activations.Sign
	Logistic = activations.Logistic
	Tanh     = activations.Tanh
)

// Builders
func McCullochPitts(entries int, threshold float64) (*Network, error) {
	return topology.McCullochPitts(entries, threshold)
}

func Rosenblatt(entries int, outputs []string) (*Network, error) {
	return topology.Rosenblatt(entries, outputs)
}

func Werbos(entries int, outputs []string, hidden []int, opts ...Option) (*Network, error) {
	return topology.Werbos(entries, outputs, hidden, opts...)
}

func WithInitializer(i Initializer) Option {
	return topology.WithInitializer(i)
}

// WithSeed draws the initial weights from the default range with the given
// seed. Werbos uses DefaultSeed when no initializer is given.
func WithSeed(seed int64) Option {
	return topology.WithSeed(seed)
}

const DefaultSeed = topology.DefaultSeed

func WithOutputActivation(k Activation) Option {
	return topology.WithOutputActivation(k)
}

func Uniform(seed int64, lower, upper float64) Initializer {
	return topology.Uniform(rand.New(rand.NewSource(seed)), lower, upper)
}

func Values(ws ...float64) Initializer {
	return topology.Values(ws...)
}

// Problems
func Problem(name string) ([]Example, error) {
	return logic.Table(name)
}

// Labels are the output names matching the labels of Problem.
func Labels() []string {
	return append([]string(nil), logic.Labels...)
}

// Training
func Train(n *Network, examples []Example, outputs []string, cfg TrainConfig) (bool, error) {
	return n.Train(examples, outputs, cfg)
}

func ParseMode(s string) (Mode, error) {
	return net.ParseMode(s)
}

// Callbacks
func Logger(interval int) net.Logger {
	return net.Logger{Interval: interval}
}

func CSVLogger(filename string, append bool) *net.CSVLogger {
	return net.NewCSVLogger(filename, append)
}

func Checkpoint(path string, means, stds []float64, opts ...export.Option) *export.Checkpoint {
	return export.NewCheckpoint(path, means, stds, opts...)
}

// Schedules
func StepDecay(initial float64, stepSize int, gamma float64) Schedule {
	return opt.StepDecay{Initial: initial, StepSize: stepSize, Gamma: gamma}
}

func Exponential(initial, gamma, min float64) Schedule {
	return opt.Exponential{Initial: initial, Gamma: gamma, Min: min}
}

// Model export
func Export(n *Network, means, stds []float64, opts ...export.Option) (*Model, error) {
	return export.FromNetwork(n, means, stds, opts...)
}

func CollapseBinarySoftmax() export.Option {
	return export.CollapseBinarySoftmax()
}

func Load(path string) (*Model, error) {
	return export.Load(path)
}
