// Command logic trains a network on a built-in truth table and prints the
// resulting weights and training curve.
//
// Exit codes: 0 when the network reproduces the table, 2 when the epoch cap
// was reached first, 1 on errors.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/config"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/logic"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/metrics"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/render"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/topology"
)

const (
	exitConverged = 0
	exitFailed    = 1
	exitCapped    = 2
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	cfg, err := parse(args)
	if err != nil {
		log.Error().Err(err).Msg("configuration")
		return exitFailed
	}
	zerolog.SetGlobalLevel(cfg.Level())

	converged, err := train(cfg, stdout)
	if err != nil {
		log.Error().Err(err).Str("problem", cfg.Problem).Str("model", cfg.Model).Msg("training")
		return exitFailed
	}
	if !converged {
		return exitCapped
	}
	return exitConverged
}

// parse loads the config file named by -config, then applies the flags set
// on the command line over it.
func parse(args []string) (config.Train, error) {
	cfg := config.DefaultTrain()
	fs := flag.NewFlagSet("logic", flag.ContinueOnError)
	path := fs.String("config", "", "YAML run description")
	model := fs.String("model", cfg.Model, "mcculloch, rosenblatt or werbos")
	problem := fs.String("problem", cfg.Problem, "truth table: or, and, not or xor")
	mode := fs.String("mode", cfg.Mode, "threshold, chain or softmax")
	activation := fs.String("activation", cfg.Activation, "werbos output activation")
	rate := fs.Float64("lr", cfg.LearningRate, "learning rate")
	epochs := fs.Int("epochs", cfg.MaxEpochs, "epoch cap")
	seed := fs.Int64("seed", cfg.Seed, "werbos weight seed, 0 for the default")
	draw := fs.String("draw", cfg.DrawDir, "directory receiving DOT drawings")
	metricsFile := fs.String("metrics", cfg.MetricsFile, "prometheus textfile to write")
	history := fs.String("history", cfg.HistoryFile, "CSV file receiving epoch stats")
	level := fs.String("log", cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *path != "" {
		if err := config.Load(*path, &cfg); err != nil {
			return cfg, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = *model
		case "problem":
			cfg.Problem = *problem
		case "mode":
			cfg.Mode = *mode
		case "activation":
			cfg.Activation = *activation
		case "lr":
			cfg.LearningRate = *rate
		case "epochs":
			cfg.MaxEpochs = *epochs
		case "seed":
			cfg.Seed = *seed
		case "draw":
			cfg.DrawDir = *draw
		case "metrics":
			cfg.MetricsFile = *metricsFile
		case "history":
			cfg.HistoryFile = *history
		case "log":
			cfg.LogLevel = *level
		}
	})
	return cfg, cfg.Validate()
}

func build(cfg config.Train) (*net.Network, error) {
	entries := cfg.Entries
	if entries == 0 {
		entries = logic.Arity(cfg.Problem)
	}
	switch cfg.Model {
	case config.ModelMcCulloch:
		return topology.McCullochPitts(entries, cfg.Threshold)
	case config.ModelRosenblatt:
		return topology.Rosenblatt(entries, cfg.Outputs)
	}

	kind, err := activations.ParseKind(cfg.Activation)
	if err != nil {
		return nil, err
	}
	opts := []topology.Option{topology.WithOutputActivation(kind)}
	if cfg.Seed != 0 {
		opts = append(opts, topology.WithSeed(cfg.Seed))
	}
	return topology.Werbos(entries, cfg.Outputs, cfg.Hidden, opts...)
}

func train(cfg config.Train, stdout io.Writer) (bool, error) {
	examples, err := logic.Table(cfg.Problem)
	if err != nil {
		return false, err
	}
	n, err := build(cfg)
	if err != nil {
		return false, errors.Wrap(err, "build network")
	}

	var converged bool
	h := &net.History{}
	if cfg.Model == config.ModelMcCulloch {
		converged, err = evaluate(n, examples)
	} else {
		converged, err = fit(cfg, n, examples, h)
	}
	if err != nil {
		return false, err
	}

	fmt.Fprintf(stdout, "%s on %s: converged=%t after %d epochs\n", n.Name, cfg.Problem, converged, n.Epochs())
	render.Table(stdout, n.Snapshot())
	if curve := render.Curve(h); curve != "" {
		fmt.Fprintln(stdout, curve)
	}
	return converged, nil
}

// evaluate checks a fixed McCulloch-Pitts network against the table: the
// output unit fires exactly for the examples labelled 1.
func evaluate(n *net.Network, examples []net.Example) (bool, error) {
	out, _ := n.UnitByName(topology.OutputName)
	for i, ex := range examples {
		if err := n.Feed(ex.Inputs); err != nil {
			return false, errors.Wrapf(err, "example %d", i)
		}
		n.Fire()
		if fired := n.Unit(out).Value > 0; fired != (ex.Label == 1) {
			log.Debug().Int("example", i).Floats64("inputs", ex.Inputs).Msg("mismatch")
			return false, nil
		}
	}
	return true, nil
}

func fit(cfg config.Train, n *net.Network, examples []net.Example, h *net.History) (bool, error) {
	mode, err := net.ParseMode(cfg.Mode)
	if err != nil {
		return false, err
	}
	callbacks := []net.Callback{h}

	var reg *prometheus.Registry
	if cfg.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		m, err := metrics.NewTraining(reg, mode)
		if err != nil {
			return false, err
		}
		callbacks = append(callbacks, m)
	}
	if cfg.HistoryFile != "" {
		callbacks = append(callbacks, net.NewCSVLogger(cfg.HistoryFile, false))
	}
	var drawer *render.Drawer
	if cfg.DrawDir != "" {
		drawer = &render.Drawer{Dir: cfg.DrawDir, Steps: []net.Step{net.StepFixed}}
		callbacks = append(callbacks, drawer)
	}

	converged, err := n.Train(examples, cfg.Outputs, net.TrainConfig{
		Mode:         mode,
		LearningRate: cfg.LearningRate,
		MaxEpochs:    cfg.MaxEpochs,
		Callbacks:    callbacks,
	})
	if err != nil {
		return false, err
	}

	if drawer != nil {
		if err := drawer.Draw(n, n.Name+" final"); err != nil {
			return false, err
		}
		log.Info().Int("files", len(drawer.Files())).Str("dir", cfg.DrawDir).Msg("drawings written")
	}
	if reg != nil {
		if err := metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			return false, err
		}
	}
	return converged, nil
}
