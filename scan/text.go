package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/beamer"
)

// HeaderNames maps instrument column titles to the names used by Table.
// Columns not listed keep their trimmed title.
var HeaderNames = map[string]string{
	"Point #":                "n_points",
	"Z Align":                "z_align",
	"SigInt":                 "sig_int",
	"Tilt X":                 "tilt_x",
	"Tilt Y":                 "tilt_y",
	"Hardware OK":            "hardware_ok",
	"MSE":                    "mse",
	"Thickness # 1 (nm)":     "thickness_nm",
	"n of Cauchy @ 632.8 nm": "n_cauchy_632nm",
	"A":                      "a",
	"B":                      "b",
	"C":                      "c",
	"Fit OK":                 "fit_ok",
}

var coordPattern = regexp.MustCompile(`[-+]?(?:\d*\.*\d+)`)

// Table is a parsed text export: one row per scan point with the position
// split out of the leading "(x, y)" column.
type Table struct {
	Columns []string
	X, Y    []float64
	rows    [][]string
	index   map[string]int
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.X) }

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Strings returns the raw values of a column.
func (t *Table) Strings(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: no column %q", ErrData, name)
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out, nil
}

// Floats returns a column parsed as numbers.
func (t *Table) Floats(name string) ([]float64, error) {
	raw, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for r, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d: %v", ErrData, name, r+1, err)
		}
		out[r] = v
	}
	return out, nil
}

// Pattern builds a scan pattern from the table positions.
func (t *Table) Pattern(offset beamer.Point, rotation float64) (*beamer.ScanPattern, error) {
	return beamer.NewScanPattern(t.X, t.Y, offset, rotation)
}

// ReadTextFile reads a text export from disk.
func ReadTextFile(path string) (*Table, error) {
	if err := checkFile(path, ".txt"); err != nil {
		return nil, err
	}
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ParseText(f)
}

// ParseText parses a text export. The first line holds the column titles;
// data starts at the first line beginning with '('. Lines in between are
// ignored.
func ParseText(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("scan: read: %w", err)
		}
		return nil, fmt.Errorf("%w: empty text export", ErrData)
	}
	titles := strings.Split(sc.Text(), "\t")
	if len(titles) < 2 {
		return nil, fmt.Errorf("%w: header has %d columns", ErrData, len(titles))
	}

	t := &Table{index: make(map[string]int)}
	for _, title := range titles[1:] {
		name := strings.TrimSpace(title)
		if renamed, ok := HeaderNames[name]; ok {
			name = renamed
		}
		t.index[name] = len(t.Columns)
		t.Columns = append(t.Columns, name)
	}

	line := 1
	started := false
	for sc.Scan() {
		line++
		text := sc.Text()
		if !started {
			if !strings.HasPrefix(text, "(") {
				continue
			}
			started = true
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		coords := coordPattern.FindAllString(fields[0], -1)
		if len(coords) != 2 {
			return nil, fmt.Errorf("%w: line %d: position %q", ErrData, line, fields[0])
		}
		x, errX := strconv.ParseFloat(coords[0], 64)
		y, errY := strconv.ParseFloat(coords[1], 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: line %d: position %q", ErrData, line, fields[0])
		}
		row := make([]string, len(t.Columns))
		for i := range row {
			if i+1 < len(fields) {
				row[i] = strings.TrimSpace(fields[i+1])
			}
		}
		t.X = append(t.X, x)
		t.Y = append(t.Y, y)
		t.rows = append(t.rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: read: %w", err)
	}
	return t, nil
}

// checkFile verifies that path exists and carries the expected extension,
// compared case-insensitively.
func checkFile(path, ext string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if got := filepath.Ext(path); !strings.EqualFold(got, ext) {
		return fmt.Errorf("%w: %q, want %s", ErrUnsupported, got, ext)
	}
	return nil
}
