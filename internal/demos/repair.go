package demos

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// legacyFields is the number of fields of a row in the comma separated
// format, where decimal commas were mistaken for separators.
const legacyFields = 8

// RepairLine merges number tokens that a decimal comma split in two back
// into a single dotted number, scanning left to right. Header lines, lines
// that already have the right number of fields and lines that cannot be
// repaired are returned trimmed but otherwise unchanged.
func RepairLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "time") {
		return line
	}
	parts := strings.Split(line, ",")
	if len(parts) == legacyFields {
		return line
	}

	repaired := make([]string, 0, legacyFields)
	i := 0
	for i < len(parts) && len(repaired) < legacyFields {
		if i+1 < len(parts) && numeric(parts[i]) && numeric(parts[i+1]) {
			repaired = append(repaired, parts[i]+"."+parts[i+1])
			i += 2
			continue
		}
		repaired = append(repaired, parts[i])
		i++
	}
	if len(repaired) < legacyFields && i < len(parts) {
		repaired = append(repaired, strings.Join(parts[i:], ""))
	}
	if len(repaired) != legacyFields {
		return line
	}
	return strings.Join(repaired, ",")
}

// numeric reports whether s is digits with at most one dot.
func numeric(s string) bool {
	s = strings.Replace(s, ".", "", 1)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RepairFile rewrites path with every line repaired. The original content is
// kept in path.bak; when that backup already exists it is the source of the
// repair, so repairing twice gives the same result.
func RepairFile(path string) error {
	bak := path + ".bak"
	if _, err := os.Stat(bak); os.IsNotExist(err) {
		if err := os.Rename(path, bak); err != nil {
			return errors.Wrap(err, "backup")
		}
	}

	in, err := os.Open(bak)
	if err != nil {
		return errors.Wrap(err, "open backup")
	}
	defer in.Close()
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create repaired file")
	}

	w := bufio.NewWriter(out)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		w.WriteString(RepairLine(sc.Text()))
		w.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		out.Close()
		return errors.Wrapf(err, "read %s", bak)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return out.Close()
}

// RepairDir repairs every demo file of dir and returns how many were
// repaired. A failing file is logged and does not stop the others.
func RepairDir(dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, Pattern))
	if err != nil {
		return 0, errors.Wrap(err, "glob demos")
	}
	sort.Strings(paths)

	repaired := 0
	for _, p := range paths {
		if err := RepairFile(p); err != nil {
			log.Error().Err(err).Str("file", p).Msg("repair failed")
			continue
		}
		log.Info().Str("file", p).Msg("repaired")
		repaired++
	}
	return repaired, nil
}
