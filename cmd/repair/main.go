// Command repair rewrites demo files whose decimal commas were taken for
// field separators. Each repaired file keeps a .bak copy of the original.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/demos"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("repair", flag.ContinueOnError)
	dir := fs.String("dir", ".", "directory holding demos_*.csv")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	n, err := demos.RepairDir(*dir)
	if err != nil {
		log.Error().Err(err).Str("dir", *dir).Msg("repair")
		return 1
	}
	log.Info().Int("files", n).Str("dir", *dir).Msg("repair done")
	return 0
}
