package export

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Magic starts the header line of a model file.
const Magic = "MLP"

// WriteTo writes the model as text: a header line "MLP <inputs> <layers>
// <sizes...>", a line of means, a line of stds, then for every layer its
// weight rows followed by a bias line.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	header := []string{Magic, strconv.Itoa(m.Inputs), strconv.Itoa(len(m.Sizes))}
	for _, s := range m.Sizes {
		header = append(header, strconv.Itoa(s))
	}
	cw.line(strings.Join(header, " "))
	cw.floats(m.Means)
	cw.floats(m.Stds)
	for l, w := range m.Weights {
		rows, _ := w.Dims()
		for r := 0; r < rows; r++ {
			cw.floats(w.RawRowView(r))
		}
		cw.floats(m.Biases[l])
	}

	if cw.err == nil {
		cw.err = cw.w.Flush()
	}
	return cw.n, cw.err
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) line(s string) {
	if c.err != nil {
		return
	}
	n, err := c.w.WriteString(s + "\n")
	c.n += int64(n)
	c.err = err
}

func (c *countingWriter) floats(vs []float64) {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	c.line(strings.Join(parts, " "))
}

// Read parses a model written by WriteTo.
func Read(r io.Reader) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	next := func() ([]string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, errors.Wrap(err, "read model")
			}
			return nil, errors.Errorf("read model: unexpected end of file after line %d", lineNo)
		}
		lineNo++
		return strings.Fields(sc.Text()), nil
	}
	floats := func(want int) ([]float64, error) {
		fields, err := next()
		if err != nil {
			return nil, err
		}
		if len(fields) != want {
			return nil, errors.Errorf("read model: line %d has %d values, want %d", lineNo, len(fields), want)
		}
		out := make([]float64, want)
		for i, f := range fields {
			if out[i], err = strconv.ParseFloat(f, 64); err != nil {
				return nil, errors.Wrapf(err, "read model: line %d", lineNo)
			}
		}
		return out, nil
	}

	header, err := next()
	if err != nil {
		return nil, err
	}
	if len(header) < 3 || header[0] != Magic {
		return nil, errors.Errorf("read model: bad header %q", strings.Join(header, " "))
	}
	ints := make([]int, len(header)-1)
	for i, f := range header[1:] {
		if ints[i], err = strconv.Atoi(f); err != nil || ints[i] < 1 {
			return nil, errors.Errorf("read model: bad header value %q", f)
		}
	}
	m := &Model{Inputs: ints[0]}
	if len(ints) != 2+ints[1] {
		return nil, errors.Errorf("read model: header declares %d layers but lists %d sizes", ints[1], len(ints)-2)
	}
	m.Sizes = ints[2:]

	if m.Means, err = floats(m.Inputs); err != nil {
		return nil, err
	}
	if m.Stds, err = floats(m.Inputs); err != nil {
		return nil, err
	}
	in := m.Inputs
	for _, size := range m.Sizes {
		w := mat.NewDense(size, in, nil)
		for r := 0; r < size; r++ {
			row, err := floats(in)
			if err != nil {
				return nil, err
			}
			w.SetRow(r, row)
		}
		b, err := floats(size)
		if err != nil {
			return nil, err
		}
		m.Weights = append(m.Weights, w)
		m.Biases = append(m.Biases, b)
		in = size
	}
	return m, nil
}

// Save writes the model to a file.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save model")
	}
	if _, err := m.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "save model %s", path)
	}
	return f.Close()
}

// Load reads a model file.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load model")
	}
	defer f.Close()
	return Read(f)
}
