// Package demos loads recorded gameplay demonstrations (demos_*.csv) into a
// labelled dataset and prepares it for training.
package demos

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

// Pattern matches demo files inside a directory.
const Pattern = "demos_*.csv"

// Columns is the number of columns of a demo row: time, the seven recorded
// values and the action.
const Columns = 9

const (
	// Gap is the height of the opening between obstacles.
	Gap = 30.0
	// Speed is the horizontal scroll speed.
	Speed = 40.0
)

// FeatureNames lists the features derived from each row, in order.
var FeatureNames = []string{"vs", "dr", "dx", "passes", "dist_bottom", "dist_top", "tti"}

// ErrFormat is returned for files whose header or rows do not have the
// expected number of columns.
var ErrFormat = errors.New("demo file format mismatch")

// Dataset represents a collection of samples and labels.
type Dataset struct {
	Samples [][]float64
	Labels  []int
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Samples) }

// Load reads every demo file of dir in name order.
func Load(dir string) (*Dataset, error) {
	paths, err := filepath.Glob(filepath.Join(dir, Pattern))
	if err != nil {
		return nil, errors.Wrap(err, "glob demos")
	}
	sort.Strings(paths)

	d := &Dataset{}
	for _, p := range paths {
		log.Info().Str("file", p).Msg("loading demos")
		if err := d.LoadFile(p); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// LoadFile appends the rows of one demo file.
func (d *Dataset) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open demos")
	}
	defer f.Close()
	return errors.Wrap(d.Read(f), path)
}

// Read appends the rows of a demo file: a header of Columns names separated
// by ';', then rows whose numbers may use a comma or a dot as the decimal
// separator. Rows whose values do not parse are skipped.
func (d *Dataset) Read(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "read header")
	}
	if len(header) != Columns {
		return errors.Wrapf(ErrFormat, "header has %d columns, want %d", len(header), Columns)
	}

	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "read row")
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < Columns {
			line, _ := reader.FieldPos(0)
			return errors.Wrapf(ErrFormat, "line %d has %d columns, want %d", line, len(record), Columns)
		}

		features, label, err := parseRow(record)
		if err != nil {
			skipped++
			continue
		}
		d.Samples = append(d.Samples, features)
		d.Labels = append(d.Labels, label)
	}
	if skipped > 0 {
		log.Warn().Int("rows", skipped).Msg("skipped unparsable demo rows")
	}
	return nil
}

func parseRow(record []string) ([]float64, int, error) {
	var v [7]float64
	for i := range v {
		f, err := parseNumber(record[i+1])
		if err != nil {
			return nil, 0, err
		}
		v[i] = f
	}
	action, err := strconv.Atoi(strings.TrimSpace(record[8]))
	if err != nil {
		return nil, 0, err
	}

	fh, vs, dr, dx, oy, passes := v[0], v[2], v[3], v[4], v[5], v[6]
	return []float64{
		vs,
		dr,
		dx,
		passes,
		fh - oy,
		(oy + Gap) - fh,
		dx / Speed,
	}, action, nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
}

// Examples converts the dataset to training examples. Sample slices are
// shared.
func (d *Dataset) Examples() []net.Example {
	out := make([]net.Example, len(d.Samples))
	for i, s := range d.Samples {
		out[i] = net.Example{Inputs: s, Label: d.Labels[i]}
	}
	return out
}
