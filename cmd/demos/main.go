// Command demos trains a softmax network on recorded demo files and exports
// it to the text model format.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/config"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/demos"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/export"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/render"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/topology"
)

const (
	// splitRatio is the share of the balanced dataset used for training.
	splitRatio = 0.8
	eps        = 1e-9
)

var outputs = []string{"0", "1"}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Error().Err(err).Msg("demos")
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := parse(args)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(cfg.Level())

	d, err := demos.Load(cfg.Data)
	if err != nil {
		return err
	}
	if d.Len() == 0 {
		return errors.Errorf("no demo rows in %s", cfg.Data)
	}
	d.Balance(cfg.Seed)
	means, stds := d.Normalize(eps)
	train, test := d.Split(splitRatio)
	log.Info().Int("train", train.Len()).Int("test", test.Len()).Msg("dataset ready")

	n, err := topology.Werbos(len(demos.FeatureNames), outputs, cfg.Hidden,
		topology.WithInitializer(topology.Uniform(rand.New(rand.NewSource(cfg.Seed)), -1, 1)))
	if err != nil {
		return err
	}

	h := &net.History{}
	checkpoint := export.NewCheckpoint(cfg.Out, means, stds, export.CollapseBinarySoftmax())
	converged, err := n.Train(train.Examples(), outputs, net.TrainConfig{
		Mode:         net.ModeSoftmax,
		LearningRate: cfg.LearningRate,
		MaxEpochs:    cfg.Epochs,
		Callbacks:    []net.Callback{h, checkpoint, net.Logger{Interval: 10}},
	})
	if err != nil {
		return err
	}
	if checkpoint.Saved() == 0 {
		m, err := export.FromNetwork(n, means, stds, export.CollapseBinarySoftmax())
		if err != nil {
			return err
		}
		if err := m.Save(cfg.Out); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "converged=%t epochs=%d model=%s\n", converged, n.Epochs(), cfg.Out)
	if test.Len() > 0 {
		acc, err := accuracy(n, test)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "test accuracy %.4f on %d samples\n", acc, test.Len())
	}
	if curve := render.LossCurve(h); curve != "" {
		fmt.Fprintln(stdout, curve)
	}
	return nil
}

func accuracy(n *net.Network, d *demos.Dataset) (float64, error) {
	correct := 0
	for i, ex := range d.Examples() {
		if err := n.Feed(ex.Inputs); err != nil {
			return 0, errors.Wrapf(err, "sample %d", i)
		}
		n.Fire()
		id, ok := n.Classify(net.SoftmaxPolicy)
		if ok && n.Unit(id).Name == outputs[ex.Label] {
			correct++
		}
	}
	return float64(correct) / float64(d.Len()), nil
}

func parse(args []string) (config.Demos, error) {
	cfg := config.DefaultDemos()
	fs := flag.NewFlagSet("demos", flag.ContinueOnError)
	path := fs.String("config", "", "YAML run description")
	data := fs.String("data", cfg.Data, "directory holding demos_*.csv")
	out := fs.String("out", cfg.Out, "model file to write")
	hidden := fs.String("hidden", "", "comma separated hidden layer sizes")
	epochs := fs.Int("epochs", cfg.Epochs, "epoch cap")
	rate := fs.Float64("lr", cfg.LearningRate, "learning rate")
	seed := fs.Int64("seed", cfg.Seed, "balancing and weight seed")
	level := fs.String("log", cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *path != "" {
		if err := config.Load(*path, &cfg); err != nil {
			return cfg, err
		}
	}
	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Data = *data
		case "out":
			cfg.Out = *out
		case "hidden":
			cfg.Hidden, err = sizes(*hidden)
		case "epochs":
			cfg.Epochs = *epochs
		case "lr":
			cfg.LearningRate = *rate
		case "seed":
			cfg.Seed = *seed
		case "log":
			cfg.LogLevel = *level
		}
	})
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func sizes(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, errors.Wrapf(err, "hidden %q", s)
		}
		out = append(out, v)
	}
	return out, nil
}
