package net

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// csvColumns is the header of the epoch log. epoch counts within the run,
// total is the network's cumulative counter.
var csvColumns = []string{"network", "epoch", "total", "mismatches", "undecided", "loss", "learning_rate", "seconds"}

// CSVLogger writes one line per epoch to a CSV file. The file is truncated at
// the start of each run unless Append is set; the header is written whenever
// the file is empty.
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool

	file *os.File
	w    *csv.Writer
}

// NewCSVLogger creates a new CSVLogger.
func NewCSVLogger(filename string, append bool) *CSVLogger {
	return &CSVLogger{Filename: filename, Append: append}
}

func csvRecord(n *Network, s EpochStats) []string {
	return []string{
		n.Name,
		strconv.Itoa(s.Epoch),
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Mismatches),
		strconv.Itoa(s.Undecided),
		strconv.FormatFloat(s.Loss, 'g', 8, 64),
		strconv.FormatFloat(s.LearningRate, 'g', -1, 64),
		strconv.FormatFloat(s.Duration.Seconds(), 'f', 6, 64),
	}
}

func (c *CSVLogger) OnTrainBegin(n *Network) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if c.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(c.Filename, flags, 0644)
	if err != nil {
		log.Error().Err(err).Str("file", c.Filename).Str("network", n.Name).Msg("open epoch log")
		return
	}
	c.file, c.w = f, csv.NewWriter(f)

	if info, err := f.Stat(); err == nil && info.Size() == 0 {
		c.write(csvColumns)
	}
}

func (c *CSVLogger) OnEpochEnd(stats EpochStats, n *Network) {
	if c.file != nil {
		c.write(csvRecord(n, stats))
	}
}

func (c *CSVLogger) OnTrainEnd(n *Network, converged bool) {
	if c.file == nil {
		return
	}
	if err := c.file.Close(); err != nil {
		log.Error().Err(err).Str("file", c.Filename).Msg("close epoch log")
	}
	c.file, c.w = nil, nil
}

func (c *CSVLogger) write(record []string) {
	c.w.Write(record)
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		log.Error().Err(err).Str("file", c.Filename).Msg("write epoch log")
	}
}
