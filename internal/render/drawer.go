package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

// Drawer is a training callback writing one numbered DOT file per observed
// step into Dir.
type Drawer struct {
	net.BaseCallback
	Dir string
	// Steps selects the steps to draw; all steps when empty.
	Steps []net.Step

	files []string
}

func (d *Drawer) wants(s net.Step) bool {
	if len(d.Steps) == 0 {
		return true
	}
	for _, want := range d.Steps {
		if want == s {
			return true
		}
	}
	return false
}

func (d *Drawer) OnTrainBegin(n *net.Network) {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		log.Error().Err(err).Str("dir", d.Dir).Msg("drawer")
	}
}

func (d *Drawer) OnStep(step net.Step, n *net.Network) {
	if !d.wants(step) {
		return
	}
	title := fmt.Sprintf("%s epoch %d %s", n.Name, n.Epochs(), step)
	if err := d.Draw(n, title); err != nil {
		log.Error().Err(err).Str("dir", d.Dir).Msg("drawer")
	}
}

// Draw writes the current state of n to the next numbered file.
func (d *Drawer) Draw(n *net.Network, title string) error {
	path := filepath.Join(d.Dir, fmt.Sprintf("%s-%05d.dot", n.Name, n.NextDraw()))
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create drawing")
	}
	if err := Dot(f, title, n.Snapshot()); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return err
	}
	d.files = append(d.files, path)
	return nil
}

// Files returns the paths written so far.
func (d *Drawer) Files() []string { return d.files }
